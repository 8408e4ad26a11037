package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "ecash", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"ecash":{"usd":0.00003821}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "usd")
	rate, err := client.FetchRate(context.Background())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.00003821")))
}

func TestFetchRateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "", wantErr: "unexpected status 500"},
		{name: "missing quote", status: http.StatusOK, body: `{"ecash":{}}`, wantErr: "no usd quote"},
		{name: "wrong coin", status: http.StatusOK, body: `{"bitcoin":{"usd":65000}}`, wantErr: "no usd quote"},
		{name: "zero rate", status: http.StatusOK, body: `{"ecash":{"usd":0}}`, wantErr: "non-positive rate"},
		{name: "negative rate", status: http.StatusOK, body: `{"ecash":{"usd":-1}}`, wantErr: "non-positive rate"},
		{name: "not json", status: http.StatusOK, body: "oops", wantErr: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "usd")
			_, err := client.FetchRate(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
