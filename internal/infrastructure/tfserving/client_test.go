package tfserving_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"churnscore/internal/infrastructure/tfserving"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestClientPredict(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name        string
		handlerFunc http.HandlerFunc
		probability float64
		errText     string
	}{
		{
			name: "Prediction",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Instances [][]float64 `json:"instances"`
				}

				rq.Equal("/v1/models/churn:predict", r.URL.Path)
				rq.Equal(http.MethodPost, r.Method)
				rq.NoError(json.NewDecoder(r.Body).Decode(&body))
				rq.Equal([][]float64{{0.5, -1, 2}}, body.Instances)

				w.Write([]byte(`{"predictions": [[0.731]]}`)) //nolint:errcheck
			},
			probability: 0.731,
		},
		{
			name: "Server error",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error": "Servable not found for request: Latest(churn)"}`)) //nolint:errcheck
			},
			errText: "tfserving: status 404",
		},
		{
			name: "Error field",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"error": "Input to reshape is a tensor with 11 values"}`)) //nolint:errcheck
			},
			errText: "tfserving: Input to reshape is a tensor with 11 values",
		},
		{
			name: "Unexpected shape",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"predictions": [[0.1, 0.9]]}`)) //nolint:errcheck
			},
			errText: "expected a single prediction",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			server := httptest.NewServer(tc.handlerFunc)
			defer server.Close()

			client, err := tfserving.NewClient(server.URL, "churn", time.Second, 1024)
			rq.NoError(err)
			rq.Equal(server.URL+"/v1/models/churn:predict", client.Endpoint())

			p, err := client.Predict(context.Background(), []float64{0.5, -1, 2})
			if tc.errText != "" {
				rq.ErrorContains(err, tc.errText)

				return
			}

			rq.NoError(err)
			rq.InDelta(tc.probability, p, 1e-12)
		})
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	rq := require.New(t)

	_, err := tfserving.NewClient("localhost:8501", "churn", time.Second, 0)
	rq.Error(err)
}

func TestClientBearerToken(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Write([]byte(`{"predictions": [[0.2]]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client, err := tfserving.NewClient(server.URL, "churn", time.Second, 1024)
	rq.NoError(err)

	_, err = client.Predict(context.Background(), []float64{1})
	rq.ErrorContains(err, "tfserving: status 401")

	p, err := client.WithBearerToken("secret").Predict(context.Background(), []float64{1})
	rq.NoError(err)
	rq.InDelta(0.2, p, 1e-12)
}
