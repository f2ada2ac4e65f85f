package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"churnscore/internal/domain"
	"churnscore/pkg/errcodes"
)

func TestErrorKinds(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		err      error
		sentinel error
		code     string
		message  string
	}{
		{
			name:     "Unknown category",
			err:      domain.UnknownCategory("Geography", "Atlantis"),
			sentinel: domain.ErrUnknownCategory,
			code:     errcodes.UnknownCategory.String(),
			message:  `Geography "Atlantis" was not seen during training: unknown category`,
		},
		{
			name:     "Dimension mismatch",
			err:      domain.DimensionMismatch("scaler", 11, 12),
			sentinel: domain.ErrDimensionMismatch,
			code:     errcodes.DimensionMismatch.String(),
			message:  "scaler: got 11 features, want 12: dimension mismatch",
		},
		{
			name:     "Artifact load",
			err:      domain.ArtifactLoad("scaler", errors.New("open scaler.json: no such file")),
			sentinel: domain.ErrArtifactLoad,
			code:     errcodes.ArtifactLoadFailure.String(),
			message:  "artifact scaler: artifact load failure: open scaler.json: no such file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			wrapped := fmt.Errorf("service.Predict: %w", tc.err)

			rq.ErrorIs(wrapped, tc.sentinel)
			rq.EqualError(tc.err, tc.message)

			code, ok := domain.GetCode(wrapped)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	rq := require.New(t)

	err := domain.UnknownCategory("Gender", "Other")

	rq.NotErrorIs(err, domain.ErrDimensionMismatch)
	rq.NotErrorIs(err, domain.ErrArtifactLoad)

	_, ok := domain.GetCode(errors.New("plain"))
	rq.False(ok)
}
