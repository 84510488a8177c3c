package emailcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okResult() Result {
	return Result{
		Deliverability: "DELIVERABLE",
		IsValidFormat:  BoolField{Value: true},
		IsMXFound:      BoolField{Value: true},
		IsSMTPValid:    BoolField{Value: true},
	}
}

func TestClient_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		require.NoError(t, json.NewEncoder(w).Encode(okResult()))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	result, err := client.Verify(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, result.IsValidFormat.Value)
	assert.Equal(t, "DELIVERABLE", result.Deliverability)
}

func TestClient_Verify_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	_, err := client.Verify(context.Background(), "jane@example.com")
	require.Error(t, err)
}

func TestEvaluate_ReasonOrdering(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Result)
		reason RejectReason
	}{
		{"bad format", func(r *Result) { r.IsValidFormat.Value = false }, ReasonBadFormat},
		{"no mx", func(r *Result) { r.IsMXFound.Value = false }, ReasonNoMX},
		{"smtp invalid", func(r *Result) { r.IsSMTPValid.Value = false }, ReasonSMTPInvalid},
		{"undeliverable", func(r *Result) { r.Deliverability = DeliverabilityUndeliverable }, ReasonUndeliverable},
		{"disposable", func(r *Result) { r.IsDisposable.Value = true }, ReasonDisposable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := okResult()
			tc.mutate(&result)
			reason, rejected := Evaluate(result)
			assert.True(t, rejected)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func TestEvaluate_Accepts(t *testing.T) {
	_, rejected := Evaluate(okResult())
	assert.False(t, rejected)
}
