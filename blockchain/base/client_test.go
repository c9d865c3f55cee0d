package base

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHost(t *testing.T) {
	cases := map[string]string{
		"https://api.trongrid.io/": "https://api.trongrid.io",
		"api.trongrid.io":          "https://api.trongrid.io",
		"localhost:8090":           "http://localhost:8090",
		"127.0.0.1:8090":           "http://127.0.0.1:8090",
		":8090":                    "http://:8090",
		"http://10.0.0.2:8090":     "http://10.0.0.2:8090",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizeHost(in), in)
	}
}

type recordedRequest struct {
	method string
	path   string
	apiKey string
	body   map[string]interface{}
	err    error
}

func TestPostSendsAPIKeyAndDecodes(t *testing.T) {
	got := make(chan recordedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path, apiKey: r.Header.Get(apiKeyHeader)}
		rec.err = json.NewDecoder(r.Body).Decode(&rec.body)
		got <- rec
		_, _ = w.Write([]byte(`{"number": 42}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{FullHost: srv.URL, APIKey: "secret", Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	var resp struct {
		Number int64 `json:"number"`
	}
	require.NoError(t, c.Post(context.Background(), "/wallet/getnowblock", map[string]bool{"visible": true}, &resp))
	require.Equal(t, int64(42), resp.Number)

	rec := <-got
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/wallet/getnowblock", rec.path)
	require.Equal(t, "secret", rec.apiKey)
	require.NoError(t, rec.err)
	require.Equal(t, true, rec.body["visible"])
}

func TestPostReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{FullHost: srv.URL})
	require.NoError(t, err)

	err = c.Post(context.Background(), "wallet/getnowblock", struct{}{}, nil)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestNewRequiresHost(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
