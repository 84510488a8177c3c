package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fastkyc/internal/onboarding"
)

// maxPhotoBytes caps inbound document downloads at 10 MiB.
const maxPhotoBytes = 10 << 20

// Update is the inbound webhook payload from the chat platform. Exactly one
// of Text or PhotoURL is set for a regular turn.
type Update struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int64  `json:"message_id"`
	Text      string `json:"text,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// Onboarding is the slice of the session controller the webhook needs.
type Onboarding interface {
	Start(ctx context.Context, chatID int64) (onboarding.Reply, error)
	Cancel(ctx context.Context, chatID int64) (onboarding.Reply, error)
	Handle(ctx context.Context, in onboarding.Incoming) (onboarding.Reply, error)
}

type Handler struct {
	service   Onboarding
	messenger Messenger
	photos    *http.Client
	logger    *slog.Logger
}

type HandlerOption func(*Handler)

func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithPhotoClient overrides the HTTP client used to fetch document photos.
func WithPhotoClient(client *http.Client) HandlerOption {
	return func(h *Handler) {
		h.photos = client
	}
}

func NewHandler(service Onboarding, messenger Messenger, opts ...HandlerOption) *Handler {
	h := &Handler{
		service:   service,
		messenger: messenger,
		photos:    &http.Client{Timeout: 30 * time.Second},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/webhook", h.HandleUpdate)
}

// HandleUpdate processes one inbound turn. The webhook always acknowledges
// with 200 once the payload decodes; delivery problems are logged rather than
// surfaced, so the platform does not redeliver a turn we already acted on.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Error("failed to decode webhook update", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if update.ChatID == 0 {
		h.logger.Error("webhook update missing chat_id")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	reply, err := h.route(ctx, update)
	if err != nil {
		h.logger.Error("failed to process update",
			"chat_id", update.ChatID,
			"error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	if reply.RedactInbound {
		if err := h.messenger.DeleteMessage(ctx, update.ChatID, update.MessageID); err != nil {
			h.logger.Error("failed to redact inbound message",
				"chat_id", update.ChatID,
				"error", err)
		}
	}
	if reply.Text != "" {
		if err := h.messenger.SendMessage(ctx, update.ChatID, reply.Text); err != nil {
			h.logger.Error("failed to send reply",
				"chat_id", update.ChatID,
				"error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) route(ctx context.Context, update Update) (onboarding.Reply, error) {
	switch strings.TrimSpace(update.Text) {
	case "/start":
		return h.service.Start(ctx, update.ChatID)
	case "/cancel":
		return h.service.Cancel(ctx, update.ChatID)
	}

	in := onboarding.Incoming{
		ChatID:    update.ChatID,
		MessageID: update.MessageID,
		Text:      update.Text,
	}
	if update.PhotoURL != "" {
		photo, err := h.fetchPhoto(ctx, update.PhotoURL)
		if err != nil {
			return onboarding.Reply{}, fmt.Errorf("fetch photo: %w", err)
		}
		in.Photo = photo
	}
	return h.service.Handle(ctx, in)
}

func (h *Handler) fetchPhoto(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build photo request: %w", err)
	}

	resp, err := h.photos.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("read photo body: %w", err)
	}
	return data, nil
}
