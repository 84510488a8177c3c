package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore persists accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the accounts table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id              UUID PRIMARY KEY,
			created_at      TIMESTAMPTZ NOT NULL,
			email           TEXT NOT NULL DEFAULT '',
			ssn             TEXT NOT NULL DEFAULT '',
			name            TEXT NOT NULL DEFAULT '',
			address         TEXT NOT NULL DEFAULT '',
			document_url    TEXT NOT NULL DEFAULT '',
			document_fields JSONB,
			adverse_media   TEXT NOT NULL DEFAULT 'unknown'
		)`)
	if err != nil {
		return fmt.Errorf("migrate accounts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context) (*Account, error) {
	acct := &Account{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		AdverseMedia: AdverseMediaUnknown,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, created_at, adverse_media) VALUES ($1, $2, $3)`,
		acct.ID, acct.CreatedAt, string(acct.AdverseMedia))
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acct, nil
}

func (s *PostgresStore) Find(ctx context.Context, id uuid.UUID) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, email, ssn, name, address, document_url, document_fields, adverse_media
		FROM accounts WHERE id = $1`, id)

	var (
		acct       Account
		fieldsJSON []byte
		flag       string
	)
	err := row.Scan(&acct.ID, &acct.CreatedAt, &acct.Email, &acct.SSN, &acct.Name,
		&acct.Address, &acct.DocumentURL, &fieldsJSON, &flag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	acct.AdverseMedia = AdverseMediaFlag(flag)
	if len(fieldsJSON) > 0 {
		var fields DocumentFields
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return nil, fmt.Errorf("decode document fields: %w", err)
		}
		acct.DocumentFields = &fields
	}
	return &acct, nil
}

func (s *PostgresStore) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return s.updateColumn(ctx, id, "email", email)
}

func (s *PostgresStore) UpdateSSN(ctx context.Context, id uuid.UUID, ssn string) error {
	return s.updateColumn(ctx, id, "ssn", ssn)
}

func (s *PostgresStore) UpdateDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	return s.updateColumn(ctx, id, "document_url", url)
}

func (s *PostgresStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return s.updateColumn(ctx, id, "name", name)
}

func (s *PostgresStore) UpdateAddress(ctx context.Context, id uuid.UUID, address string) error {
	return s.updateColumn(ctx, id, "address", address)
}

func (s *PostgresStore) UpdateDocumentFields(ctx context.Context, id uuid.UUID, fields DocumentFields) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document fields: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET document_fields = $2 WHERE id = $1`, id, payload)
	if err != nil {
		return fmt.Errorf("update document fields: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) UpdateAdverseMedia(ctx context.Context, id uuid.UUID, flag AdverseMediaFlag) error {
	return s.updateColumn(ctx, id, "adverse_media", string(flag))
}

// updateColumn writes a single column. The column name is always one of the
// fixed identifiers above, never user input.
func (s *PostgresStore) updateColumn(ctx context.Context, id uuid.UUID, column, value string) error {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE accounts SET %s = $2 WHERE id = $1`, column), id, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
