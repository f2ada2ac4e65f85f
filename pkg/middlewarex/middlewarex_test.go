package middlewarex_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"churnscore/pkg/contextx"
	"churnscore/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "generated"},
		{name: "propagated", header: "d0b5e5kq0ij4cjtb7lp0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			var seen contextx.TraceID

			h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				traceID, err := contextx.TraceIDFromContext(r.Context())
				rq.NoError(err)

				seen = traceID
			}))

			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				r.Header.Set("X-Trace-Id", tt.header)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			rq.NotEmpty(seen)
			rq.Equal(seen.String(), w.Header().Get("X-Trace-Id"))

			if tt.header != "" {
				rq.Equal(tt.header, seen.String())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middlewarex.TraceID(middlewarex.Logger(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		contextx.LoggerFromContextOrDefault(r.Context()).Info("inside")
	})))

	r := httptest.NewRequest(http.MethodPost, "/v1/predictions", http.NoBody)
	r.Header.Set("X-Trace-Id", "trace-1")
	r = r.WithContext(contextx.WithLogger(r.Context(), base))

	h.ServeHTTP(httptest.NewRecorder(), r)

	rq.Contains(buf.String(), `"trace-id":"trace-1"`)
	rq.Contains(buf.String(), `"http-method":"POST"`)
	rq.Contains(buf.String(), `"url":"/v1/predictions"`)
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	h := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rq.Equal(http.StatusInternalServerError, w.Code)
}
