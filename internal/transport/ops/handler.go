package ops

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fastkyc/internal/account"
	"fastkyc/internal/platform/middleware"
	"fastkyc/pkg/domain"
	dErrors "fastkyc/pkg/domain-errors"
)

// AccountReader is the read-only slice of the account store the ops API needs.
type AccountReader interface {
	Find(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// HealthChecker reports the health of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// AccountResponse is the operator view of an account. The SSN is always
// masked; the full value never leaves the store through this API.
type AccountResponse struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Email       string `json:"email,omitempty"`
	SSNMasked   string `json:"ssn_masked,omitempty"`
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`

	DocumentFields *account.DocumentFields `json:"document_fields,omitempty"`
	AdverseMedia   string                  `json:"adverse_media"`
}

type Handler struct {
	accounts  AccountReader
	validator middleware.JWTValidator
	checks    map[string]HealthChecker
	logger    *slog.Logger
}

func NewHandler(accounts AccountReader, validator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		accounts:  accounts,
		validator: validator,
		checks:    make(map[string]HealthChecker),
		logger:    logger,
	}
}

// AddHealthCheck registers a named dependency probe for /healthz.
func (h *Handler) AddHealthCheck(name string, check HealthChecker) {
	h.checks[name] = check
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Get("/v1/accounts/{id}", h.GetAccount)
	})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid account id"))
		return
	}

	acc, err := h.accounts.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			h.writeError(w, dErrors.New(dErrors.CodeNotFound, "account not found"))
			return
		}
		h.logger.Error("failed to load account",
			"account_id", id,
			"subject", middleware.GetSubject(r.Context()),
			"error", err)
		h.writeError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to load account", err))
		return
	}

	h.writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			h.logger.Error("health check failed", "dependency", name, "error", err)
			deps[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]any{"status": "ok", "dependencies": deps}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	h.writeJSON(w, status, body)
}

func toAccountResponse(acc *account.Account) AccountResponse {
	resp := AccountResponse{
		ID:          acc.ID.String(),
		CreatedAt:   acc.CreatedAt.UTC().Format(time.RFC3339),
		Email:       acc.Email,
		Name:        acc.Name,
		Address:     acc.Address,
		DocumentURL: acc.DocumentURL,

		DocumentFields: acc.DocumentFields,
		AdverseMedia:   string(acc.AdverseMedia),
	}
	if acc.SSN != "" {
		resp.SSNMasked = domain.SSN(acc.SSN).Masked()
	}
	return resp
}

func (h *Handler) writeError(w http.ResponseWriter, err *dErrors.Error) {
	h.writeJSON(w, dErrors.ToHTTPStatus(err.Code), map[string]string{
		"error":   string(err.Code),
		"message": err.Message,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
