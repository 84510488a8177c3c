package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fastkyc/internal/onboarding"
	"fastkyc/internal/transport/chat/mocks"
)

//go:generate mockgen -source=handler.go -destination=mocks/chat-mocks.go -package=mocks Onboarding
//go:generate mockgen -source=messenger.go -destination=mocks/messenger-mocks.go -package=mocks Messenger
type WebhookHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *WebhookHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerSuite))
}

func (s *WebhookHandlerSuite) TestHandleUpdate() {
	const chatID = int64(7407996533)

	s.T().Run("slash start begins a session and sends the greeting", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Start(gomock.Any(), chatID).
			Return(onboarding.Reply{Text: "hello"}, nil)
		messenger.EXPECT().SendMessage(gomock.Any(), chatID, "hello").Return(nil)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 1, Text: "/start"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("slash cancel is routed to Cancel", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Cancel(gomock.Any(), chatID).
			Return(onboarding.Reply{Text: "Conversation cancelled."}, nil)
		messenger.EXPECT().SendMessage(gomock.Any(), chatID, "Conversation cancelled.").Return(nil)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 2, Text: "/cancel"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("text turn is forwarded to Handle", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().
			Handle(gomock.Any(), onboarding.Incoming{ChatID: chatID, MessageID: 3, Text: "user@example.com"}).
			Return(onboarding.Reply{Text: "next"}, nil)
		messenger.EXPECT().SendMessage(gomock.Any(), chatID, "next").Return(nil)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 3, Text: "user@example.com"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("photo turn downloads the image before forwarding", func(t *testing.T) {
		photoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("jpeg-bytes"))
		}))
		defer photoServer.Close()

		service, messenger, router := s.newHandler(t)
		service.EXPECT().
			Handle(gomock.Any(), onboarding.Incoming{ChatID: chatID, MessageID: 4, Photo: []byte("jpeg-bytes")}).
			Return(onboarding.Reply{Text: "got it"}, nil)
		messenger.EXPECT().SendMessage(gomock.Any(), chatID, "got it").Return(nil)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 4, PhotoURL: photoServer.URL})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("redacting reply deletes the inbound message first", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).
			Return(onboarding.Reply{Text: "done", RedactInbound: true, Completed: true}, nil)
		gomock.InOrder(
			messenger.EXPECT().DeleteMessage(gomock.Any(), chatID, int64(5)).Return(nil),
			messenger.EXPECT().SendMessage(gomock.Any(), chatID, "done").Return(nil),
		)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 5, Text: "123-45-6789"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("redaction failure does not block the reply", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).
			Return(onboarding.Reply{Text: "done", RedactInbound: true}, nil)
		messenger.EXPECT().DeleteMessage(gomock.Any(), chatID, int64(6)).
			Return(errors.New("message already gone"))
		messenger.EXPECT().SendMessage(gomock.Any(), chatID, "done").Return(nil)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 6, Text: "123-45-6789"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("controller error still acknowledges the webhook", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).
			Return(onboarding.Reply{}, errors.New("store unavailable"))
		messenger.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 7, Text: "anything"})

		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("returns 400 when body is invalid json", func(t *testing.T) {
		service, messenger, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).Times(0)
		messenger.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := httptest.NewRequest(http.MethodPost, "/chat/webhook", strings.NewReader("{bad-json"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	s.T().Run("returns 400 when chat_id is missing", func(t *testing.T) {
		service, _, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).Times(0)

		status := s.doWebhook(t, router, Update{MessageID: 8, Text: "hi"})

		assert.Equal(t, http.StatusBadRequest, status)
	})

	s.T().Run("photo download failure is swallowed and acknowledged", func(t *testing.T) {
		photoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer photoServer.Close()

		service, messenger, router := s.newHandler(t)
		service.EXPECT().Handle(gomock.Any(), gomock.Any()).Times(0)
		messenger.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status := s.doWebhook(t, router, Update{ChatID: chatID, MessageID: 9, PhotoURL: photoServer.URL})

		assert.Equal(t, http.StatusOK, status)
	})
}

func (s *WebhookHandlerSuite) newHandler(t *testing.T) (*mocks.MockOnboarding, *mocks.MockMessenger, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service := mocks.NewMockOnboarding(ctrl)
	messenger := mocks.NewMockMessenger(ctrl)
	handler := NewHandler(service, messenger, WithLogger(logger))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return service, messenger, r
}

func (s *WebhookHandlerSuite) doWebhook(t *testing.T, router *chi.Mux, update Update) int {
	t.Helper()
	body, err := json.Marshal(update)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat/webhook", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	return rr.Code
}
