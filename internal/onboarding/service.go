// Package onboarding drives the conversational KYC intake: a linear wizard
// collecting an ID document photo, an email address and an SSN, with
// background verification dispatched as the document arrives.
package onboarding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fastkyc/internal/account"
	"fastkyc/internal/blob"
	"fastkyc/internal/platform/metrics"
	"fastkyc/internal/verification"
	"fastkyc/internal/verification/emailcheck"
	"fastkyc/pkg/domain"
)

// Incoming is one user turn as seen by the controller. Photo carries the
// fetched JPEG bytes when the message contained one.
type Incoming struct {
	ChatID    int64
	MessageID int64
	Text      string
	Photo     []byte
}

// Reply is the controller's answer for a turn. RedactInbound asks the
// transport to delete the user's message from the transcript.
type Reply struct {
	Text          string
	RedactInbound bool
	// Completed is set when the conversation reached its terminal state.
	Completed bool
}

// Service is the onboarding session controller. It owns each session for the
// conversation's lifetime and is the only writer of session state.
type Service struct {
	accounts account.Store
	blobs    blob.Store
	email    emailcheck.Verifier
	verifier verification.Submitter
	sessions SessionStore

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the controller.
func New(accounts account.Store, blobs blob.Store, email emailcheck.Verifier, verifier verification.Submitter, sessions SessionStore, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		blobs:    blobs,
		email:    email,
		verifier: verifier,
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a session: creates the durable account record and prompts for
// the ID document. Restarting an existing conversation abandons the previous
// session and its account record.
func (s *Service) Start(ctx context.Context, chatID int64) (Reply, error) {
	acct, err := s.accounts.Create(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("create account: %w", err)
	}

	session := &Session{
		ChatID:    chatID,
		AccountID: acct.ID,
		State:     StateDocument,
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}

	s.metrics.SessionStarted()
	s.logger.InfoContext(ctx, "session started",
		"chat_id", chatID,
		"account_id", acct.ID.String(),
	)
	return Reply{Text: promptStart}, nil
}

// Cancel terminates the conversation from any state. The account record
// created at start is retained; in-flight background checks are not stopped.
func (s *Service) Cancel(ctx context.Context, chatID int64) (Reply, error) {
	session, err := s.sessions.Find(ctx, chatID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Reply{Text: promptCancelled, Completed: true}, nil
		}
		return Reply{}, fmt.Errorf("find session: %w", err)
	}

	if err := s.sessions.Delete(ctx, chatID); err != nil {
		return Reply{}, fmt.Errorf("delete session: %w", err)
	}

	s.metrics.IncrementStep(string(session.State), "cancelled")
	s.metrics.SessionEnded()
	s.logger.InfoContext(ctx, "session cancelled",
		"chat_id", chatID,
		"account_id", session.AccountID.String(),
		"state", string(session.State),
	)
	return Reply{Text: promptCancelled, Completed: true}, nil
}

// Handle routes a non-command message to the current step's handler.
func (s *Service) Handle(ctx context.Context, in Incoming) (Reply, error) {
	session, err := s.sessions.Find(ctx, in.ChatID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Reply{Text: promptNoSession}, nil
		}
		return Reply{}, fmt.Errorf("find session: %w", err)
	}

	switch session.State {
	case StateDocument:
		return s.handleDocument(ctx, session, in)
	case StateEmail:
		return s.handleEmail(ctx, session, in)
	case StateSSN:
		return s.handleSSN(ctx, session, in)
	default:
		return Reply{}, fmt.Errorf("session %d in unknown state %q", in.ChatID, session.State)
	}
}

// handleDocument runs the document step: persist the image, record its URL,
// dispatch extraction and advance. The background job is submitted only after
// the durable writes succeed, and the conversation never waits for it.
func (s *Service) handleDocument(ctx context.Context, session *Session, in Incoming) (Reply, error) {
	if len(in.Photo) == 0 {
		s.metrics.IncrementStep(string(StateDocument), "reprompted")
		return Reply{Text: promptDocumentRetry}, nil
	}

	key := fmt.Sprintf("%d_id_document.jpg", session.ChatID)
	url, err := s.blobs.Upload(ctx, key, bytes.NewReader(in.Photo))
	if err != nil {
		s.logger.ErrorContext(ctx, "document upload failed",
			"chat_id", session.ChatID,
			"account_id", session.AccountID.String(),
			"error", err.Error(),
		)
		s.metrics.IncrementStep(string(StateDocument), "reprompted")
		return Reply{Text: promptUploadFailed}, nil
	}

	if err := s.accounts.UpdateDocumentURL(ctx, session.AccountID, url); err != nil {
		return Reply{}, fmt.Errorf("record document url: %w", err)
	}

	s.verifier.Submit(verification.Job{
		AccountID: session.AccountID,
		ImageJPEG: in.Photo,
	})

	session.DocumentRef = url
	session.State = StateEmail
	if err := s.sessions.Save(ctx, session); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}

	s.metrics.IncrementStep(string(StateDocument), "advanced")
	return Reply{Text: promptDocumentReceived}, nil
}

// handleEmail stores the candidate address, then applies the deliverability
// policy. Every rejection keeps the session in the email step with its own
// copy; a provider failure asks the user to simply try again.
func (s *Service) handleEmail(ctx context.Context, session *Session, in Incoming) (Reply, error) {
	if in.Text == "" {
		s.metrics.IncrementStep(string(StateEmail), "reprompted")
		return Reply{Text: promptEmailText}, nil
	}

	session.Email = in.Text
	if err := s.accounts.UpdateEmail(ctx, session.AccountID, in.Text); err != nil {
		return Reply{}, fmt.Errorf("record email: %w", err)
	}

	result, err := s.email.Verify(ctx, in.Text)
	if err != nil {
		s.logger.WarnContext(ctx, "email verification unavailable",
			"chat_id", session.ChatID,
			"error", err.Error(),
		)
		s.metrics.IncrementStep(string(StateEmail), "reprompted")
		return Reply{Text: promptEmailRetry}, nil
	}

	if reason, rejected := emailcheck.Evaluate(result); rejected {
		s.metrics.IncrementStep(string(StateEmail), "reprompted")
		return Reply{Text: emailRejectCopy[reason]}, nil
	}

	session.State = StateSSN
	if err := s.sessions.Save(ctx, session); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}

	s.metrics.IncrementStep(string(StateEmail), "advanced")
	return Reply{Text: promptSSN}, nil
}

// handleSSN validates before persisting: an SSN that fails the format check
// never reaches the durable record. On success the inbound message is
// redacted from the transcript and the conversation terminates.
func (s *Service) handleSSN(ctx context.Context, session *Session, in Incoming) (Reply, error) {
	ssn, err := domain.ParseSSN(in.Text)
	if err != nil {
		s.metrics.IncrementStep(string(StateSSN), "reprompted")
		return Reply{Text: promptSSNRetry}, nil
	}

	if err := s.accounts.UpdateSSN(ctx, session.AccountID, ssn.String()); err != nil {
		return Reply{}, fmt.Errorf("record ssn: %w", err)
	}
	session.SSN = ssn.String()

	if err := s.sessions.Delete(ctx, session.ChatID); err != nil {
		return Reply{}, fmt.Errorf("delete session: %w", err)
	}

	s.metrics.IncrementStep(string(StateSSN), "advanced")
	s.metrics.SessionEnded()
	s.logger.InfoContext(ctx, "session completed",
		"chat_id", session.ChatID,
		"account_id", session.AccountID.String(),
	)

	summary := summaryPrefix +
		fmt.Sprintf("Email: %s\n", session.Email) +
		"ID Document: Saved"
	return Reply{Text: summary, RedactInbound: true, Completed: true}, nil
}
