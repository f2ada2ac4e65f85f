package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"churnscore/pkg/httpx"
)

func TestAuthBearerRoundTripper(t *testing.T) {
	rq := require.New(t)

	var got string

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken("secret")),
	}

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)
	resp.Body.Close()

	rq.Equal("Bearer secret", got)
	rq.Empty(req.Header.Get("Authorization"))
}

func TestAuthBearerRoundTripperEmptyToken(t *testing.T) {
	rq := require.New(t)

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken("")),
	}

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1", http.NoBody)
	rq.NoError(err)

	_, err = client.Do(req) //nolint:bodyclose
	rq.ErrorIs(err, httpx.ErrEmptyToken)
}
