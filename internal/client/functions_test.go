package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

func TestHTTPFunctions_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		switch r.URL.Path {
		case "/functions/v1/check-usage":
			_ = json.NewEncoder(w).Encode(models.NewUsageStatus(3, 10))
		case "/functions/v1/create-checkout":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "weekly", body["plan"])
			_, _ = w.Write([]byte(`{"url":"https://checkout.example/cs_1"}`))
		case "/functions/v1/increment-usage":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"failed to increment usage"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	fn := NewHTTPFunctions(srv.URL+"/", "anon-key", nil)

	t.Run("decodes response", func(t *testing.T) {
		var status models.UsageStatus
		require.NoError(t, fn.Invoke(context.Background(), FnCheckUsage, "token-1", nil, &status))
		assert.Equal(t, models.NewUsageStatus(3, 10), status)
	})

	t.Run("sends body", func(t *testing.T) {
		var resp struct {
			URL string `json:"url"`
		}
		require.NoError(t, fn.Invoke(context.Background(), FnCreateCheckout, "token-1", map[string]string{"plan": "weekly"}, &resp))
		assert.Equal(t, "https://checkout.example/cs_1", resp.URL)
	})

	t.Run("error body", func(t *testing.T) {
		err := fn.Invoke(context.Background(), FnIncrementUsage, "token-1", nil, nil)
		var fe *FunctionError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusInternalServerError, fe.Status)
		assert.Equal(t, "failed to increment usage", fe.Message)
	})

	t.Run("status text when body is empty", func(t *testing.T) {
		err := fn.Invoke(context.Background(), "unknown", "token-1", nil, nil)
		var fe *FunctionError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusNotFound, fe.Status)
		assert.Equal(t, "Not Found", fe.Message)
	})
}
