package onboarding

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when no session exists for the chat.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists in-progress conversations keyed by chat ID.
type SessionStore interface {
	Find(ctx context.Context, chatID int64) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, chatID int64) error
}
