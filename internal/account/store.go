package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no account exists for the given ID.
var ErrNotFound = errors.New("account not found")

// Store persists account records. Writers update disjoint fields: the
// onboarding controller owns email/ssn/document URL, the verification pipeline
// owns document fields, name/address and the adverse media flag.
type Store interface {
	Create(ctx context.Context) (*Account, error)
	Find(ctx context.Context, id uuid.UUID) (*Account, error)

	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdateSSN(ctx context.Context, id uuid.UUID, ssn string) error
	UpdateDocumentURL(ctx context.Context, id uuid.UUID, url string) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateAddress(ctx context.Context, id uuid.UUID, address string) error
	UpdateDocumentFields(ctx context.Context, id uuid.UUID, fields DocumentFields) error
	UpdateAdverseMedia(ctx context.Context, id uuid.UUID, flag AdverseMediaFlag) error
}
