package ops

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fastkyc/internal/account"
	"fastkyc/internal/jwttoken"
)

type OpsHandlerSuite struct {
	suite.Suite
	ctx    context.Context
	tokens *jwttoken.Service
}

func (s *OpsHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
	s.tokens = jwttoken.NewService("test-signing-key", "fastkyc", "fastkyc-ops")
}

func TestOpsHandlerSuite(t *testing.T) {
	suite.Run(t, new(OpsHandlerSuite))
}

func (s *OpsHandlerSuite) TestGetAccount() {
	s.T().Run("returns the account with a masked ssn", func(t *testing.T) {
		store, router := s.newHandler(t)
		acc, err := store.Create(s.ctx)
		require.NoError(t, err)
		require.NoError(t, store.UpdateEmail(s.ctx, acc.ID, "user@example.com"))
		require.NoError(t, store.UpdateSSN(s.ctx, acc.ID, "123-45-6789"))
		require.NoError(t, store.UpdateAdverseMedia(s.ctx, acc.ID, account.AdverseMediaNotFound))

		status, got, errBody := s.doGet(t, router, acc.ID.String(), s.token(t))

		assert.Equal(t, http.StatusOK, status)
		assert.Nil(t, errBody)
		require.NotNil(t, got)
		assert.Equal(t, acc.ID.String(), got.ID)
		assert.Equal(t, "user@example.com", got.Email)
		assert.Equal(t, "***-**-6789", got.SSNMasked)
		assert.Equal(t, "not_found", got.AdverseMedia)
	})

	s.T().Run("omits the ssn field before one is collected", func(t *testing.T) {
		store, router := s.newHandler(t)
		acc, err := store.Create(s.ctx)
		require.NoError(t, err)

		status, got, _ := s.doGet(t, router, acc.ID.String(), s.token(t))

		assert.Equal(t, http.StatusOK, status)
		require.NotNil(t, got)
		assert.Empty(t, got.SSNMasked)
		assert.Equal(t, "unknown", got.AdverseMedia)
	})

	s.T().Run("returns 404 for an unknown account", func(t *testing.T) {
		_, router := s.newHandler(t)

		status, got, errBody := s.doGet(t, router, uuid.NewString(), s.token(t))

		assert.Equal(t, http.StatusNotFound, status)
		assert.Nil(t, got)
		assert.Equal(t, "not_found", errBody["error"])
	})

	s.T().Run("returns 400 for a malformed id", func(t *testing.T) {
		_, router := s.newHandler(t)

		status, got, errBody := s.doGet(t, router, "not-a-uuid", s.token(t))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Nil(t, got)
		assert.Equal(t, "invalid_input", errBody["error"])
	})

	s.T().Run("returns 401 without a bearer token", func(t *testing.T) {
		_, router := s.newHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	s.T().Run("returns 401 for a token signed with another key", func(t *testing.T) {
		_, router := s.newHandler(t)
		other := jwttoken.NewService("other-key", "fastkyc", "fastkyc-ops")
		token, err := other.GenerateToken("ops-user", "operator", time.Hour)
		require.NoError(t, err)

		status, _, _ := s.doGet(t, router, uuid.NewString(), token)

		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func (s *OpsHandlerSuite) TestHealth() {
	s.T().Run("reports ok with healthy dependencies", func(t *testing.T) {
		store := account.NewInMemoryStore()
		handler := NewHandler(store, s.tokens, newTestLogger())
		handler.AddHealthCheck("sessions", healthCheckFunc(func(context.Context) error { return nil }))
		router := chi.NewRouter()
		handler.RegisterRoutes(router)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	s.T().Run("reports degraded when a dependency fails", func(t *testing.T) {
		store := account.NewInMemoryStore()
		handler := NewHandler(store, s.tokens, newTestLogger())
		handler.AddHealthCheck("sessions", healthCheckFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))
		router := chi.NewRouter()
		handler.RegisterRoutes(router)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
	})
}

type healthCheckFunc func(ctx context.Context) error

func (f healthCheckFunc) Health(ctx context.Context) error { return f(ctx) }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func (s *OpsHandlerSuite) newHandler(t *testing.T) (*account.InMemoryStore, *chi.Mux) {
	t.Helper()
	store := account.NewInMemoryStore()
	handler := NewHandler(store, s.tokens, newTestLogger())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return store, router
}

func (s *OpsHandlerSuite) token(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.GenerateToken("ops-user", "operator", time.Hour)
	require.NoError(t, err)
	return token
}

func (s *OpsHandlerSuite) doGet(t *testing.T, router *chi.Mux, id, token string) (int, *AccountResponse, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+id, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	raw, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return rr.Code, nil, nil
	}

	if rr.Code == http.StatusOK {
		var res AccountResponse
		require.NoError(t, json.Unmarshal(raw, &res))
		return rr.Code, &res, nil
	}
	var errBody map[string]string
	require.NoError(t, json.Unmarshal(raw, &errBody))
	return rr.Code, nil, errBody
}
