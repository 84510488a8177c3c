package adversemedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		result  string
		verdict Verdict
	}{
		{"Yes, several news articles mention the subject.", VerdictFound},
		{"No evidence was found.", VerdictNotFound},
		{"The search did not complete.", VerdictIndeterminate},
		{"", VerdictIndeterminate},
	}
	for _, tc := range tests {
		t.Run(tc.result, func(t *testing.T) {
			assert.Equal(t, tc.verdict, ParseVerdict(tc.result))
		})
	}
}

func newTestClient(url string) *Client {
	return NewClient(Config{
		URL:           url,
		APIKey:        "hdr-key",
		Endpoint:      "https://api.hdr.is",
		MaxIterations: 10,
	})
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		browse := req["browse_config"].(map[string]any)
		assert.Equal(t, "https://google.com", browse["startUrl"])
		assert.Equal(t, float64(10), browse["maxIterations"])
		objective := browse["objective"].([]any)[0].(string)
		assert.Contains(t, objective, "Jane Doe")
		assert.Contains(t, objective, "1 Main St")

		inventory := req["inventory"].([]any)
		assert.Len(t, inventory, 2)

		fmt.Fprint(w, `{"objectiveComplete": {"result": "Yes, a court record matched."}}`)
	}))
	defer srv.Close()

	verdict, err := newTestClient(srv.URL).Search(context.Background(), "Jane Doe", "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, VerdictFound, verdict)
}

func TestClient_Search_NoObjectiveComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "incomplete"}`)
	}))
	defer srv.Close()

	verdict, err := newTestClient(srv.URL).Search(context.Background(), "Jane Doe", "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, VerdictIndeterminate, verdict)
}

func TestClient_Search_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "Jane Doe", "1 Main St")
	require.Error(t, err)
}
