package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps accounts in a mutex guarded map. Used in tests and for
// local development without a database.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[uuid.UUID]*Account)}
}

func (s *InMemoryStore) Create(_ context.Context) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := &Account{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		AdverseMedia: AdverseMediaUnknown,
	}
	s.accounts[acct.ID] = acct
	return cloneAccount(acct), nil
}

func (s *InMemoryStore) Find(_ context.Context, id uuid.UUID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAccount(acct), nil
}

func (s *InMemoryStore) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return s.update(id, func(a *Account) { a.Email = email })
}

func (s *InMemoryStore) UpdateSSN(ctx context.Context, id uuid.UUID, ssn string) error {
	return s.update(id, func(a *Account) { a.SSN = ssn })
}

func (s *InMemoryStore) UpdateDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	return s.update(id, func(a *Account) { a.DocumentURL = url })
}

func (s *InMemoryStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return s.update(id, func(a *Account) { a.Name = name })
}

func (s *InMemoryStore) UpdateAddress(ctx context.Context, id uuid.UUID, address string) error {
	return s.update(id, func(a *Account) { a.Address = address })
}

func (s *InMemoryStore) UpdateDocumentFields(ctx context.Context, id uuid.UUID, fields DocumentFields) error {
	return s.update(id, func(a *Account) {
		f := fields
		a.DocumentFields = &f
	})
}

func (s *InMemoryStore) UpdateAdverseMedia(ctx context.Context, id uuid.UUID, flag AdverseMediaFlag) error {
	return s.update(id, func(a *Account) { a.AdverseMedia = flag })
}

// All returns a snapshot of every account, for tests and local tooling.
func (s *InMemoryStore) All() []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		accounts = append(accounts, cloneAccount(acct))
	}
	return accounts
}

func (s *InMemoryStore) update(id uuid.UUID, apply func(*Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	apply(acct)
	return nil
}

func cloneAccount(a *Account) *Account {
	clone := *a
	if a.DocumentFields != nil {
		fields := *a.DocumentFields
		clone.DocumentFields = &fields
	}
	return &clone
}
