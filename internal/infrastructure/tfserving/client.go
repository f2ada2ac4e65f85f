// Package tfserving calls a TensorFlow Serving REST endpoint hosting the churn
// model.
package tfserving

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"churnscore/pkg/httpx"
	"churnscore/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const maxErrorBodyLen = 512

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error"`
}

type Client struct {
	endpoint       string
	httpClient     *http.Client
	logFieldMaxLen int
}

// NewClient returns a client for POST {baseURL}/v1/models/{model}:predict.
// Requests and responses are logged with financial fields masked.
func NewClient(baseURL, model string, timeout time.Duration, logFieldMaxLen int) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("tfserving url %q must be absolute", baseURL)
	}

	u = u.JoinPath("v1", "models", model+":predict")

	return &Client{
		endpoint: u.String(),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(http.DefaultTransport, logFieldMaxLen),
		},
		logFieldMaxLen: logFieldMaxLen,
	}, nil
}

// WithBearerToken authenticates calls for servers behind an auth gateway. The
// header is added below the logging layer so the token never reaches the logs.
func (c *Client) WithBearerToken(token string) *Client {
	c.httpClient.Transport = newTransport(
		httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken(token)),
		c.logFieldMaxLen,
	)

	return c
}

func newTransport(next http.RoundTripper, logFieldMaxLen int) http.RoundTripper {
	return httpx.NewLoggingRoundTripper(
		next,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict sends one instance and returns the single output of the model.
func (c *Client) Predict(ctx context.Context, x []float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Instances: [][]float64{x}})
	if err != nil {
		return 0, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen)) //nolint:errcheck

		return 0, fmt.Errorf("tfserving: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out predictResponse

	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("json.Decode: %w", err)
	}

	if out.Error != "" {
		return 0, fmt.Errorf("tfserving: %s", out.Error)
	}

	if len(out.Predictions) != 1 || len(out.Predictions[0]) != 1 {
		return 0, fmt.Errorf("tfserving: expected a single prediction, got %v", out.Predictions)
	}

	return out.Predictions[0][0], nil
}
