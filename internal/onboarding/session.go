package onboarding

import (
	"time"

	"github.com/google/uuid"
)

// State is the conversation's current step. The flow is linear: document,
// then email, then SSN; the only back edge is a re-prompt on invalid input.
type State string

const (
	StateDocument State = "document"
	StateEmail    State = "email"
	StateSSN      State = "ssn"
)

// Session is one user's in-progress onboarding conversation, keyed by chat
// ID. Created on /start, destroyed on completion or /cancel; the durable
// account record outlives it.
type Session struct {
	ChatID    int64     `json:"chat_id"`
	AccountID uuid.UUID `json:"account_id"`
	State     State     `json:"state"`

	Email string `json:"email,omitempty"`
	SSN   string `json:"ssn,omitempty"`
	// DocumentRef is the blob URL once the upload succeeds.
	DocumentRef string `json:"document_ref,omitempty"`

	StartedAt time.Time `json:"started_at"`
}
