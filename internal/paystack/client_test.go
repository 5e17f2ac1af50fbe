package paystack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/monocle-wallet-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, secretKey string) *Client {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return NewClient(log, &config.PaystackConfig{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		Timeout:   2 * time.Second,
	})
}

func TestClient_Verify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ref_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"success","amount":50000,"currency":"NGN"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk_test_abc")

	result, err := client.Verify(context.Background(), "ref_123")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(50000), result.Amount)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "NGN", result.Currency)
	assert.JSONEq(t,
		`{"status":true,"message":"Verification successful","data":{"status":"success","amount":50000,"currency":"NGN"}}`,
		string(result.Raw),
	)
}

func TestClient_Verify_UnconfirmedStatusIsNotAnError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"AbandonedTransaction",
			`{"status":true,"message":"Verification successful","data":{"status":"abandoned","amount":50000,"currency":"NGN"}}`,
		},
		{
			"FailedTransaction",
			`{"status":true,"message":"Verification successful","data":{"status":"failed","amount":50000,"currency":"NGN"}}`,
		},
		{
			"FalseTopLevelStatus",
			`{"status":false,"message":"Transaction reference not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, "sk_test_abc")

			result, err := client.Verify(context.Background(), "ref_123")

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.JSONEq(t, tt.body, string(result.Raw))
		})
	}
}

func TestClient_Verify_NotFoundIsUnconfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk_test_abc")

	result, err := client.Verify(context.Background(), "missing_ref")

	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestClient_Verify_MissingSecretKey(t *testing.T) {
	client := newTestClient("https://api.paystack.co", "")

	result, err := client.Verify(context.Background(), "ref_123")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrMissingSecretKey))
}

func TestClient_Verify_EmptyReference(t *testing.T) {
	client := newTestClient("https://api.paystack.co", "sk_test_abc")

	result, err := client.Verify(context.Background(), "")

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestClient_Verify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk_test_abc")

	result, err := client.Verify(context.Background(), "ref_123")

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestClient_Verify_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := newTestClient(server.URL, "sk_test_abc")

	result, err := client.Verify(context.Background(), "ref_123")

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingSecretKey))
}

func TestClient_Verify_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk_test_abc")

	result, err := client.Verify(context.Background(), "ref_123")

	assert.Nil(t, result)
	assert.Error(t, err)
}
