package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var ErrEmptyToken = errors.New("empty bearer token")

type tokenSource interface {
	Token(context.Context) (string, error)
}

// StaticToken is a token configured once at startup.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrEmptyToken
	}

	return string(t), nil
}

// AuthBearerRoundTripper sets the Authorization header on outgoing requests.
type AuthBearerRoundTripper struct {
	next   http.RoundTripper
	tokens tokenSource
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	tokens tokenSource,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:   next,
		tokens: tokens,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := rt.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("tokens.Token: %w", err)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
