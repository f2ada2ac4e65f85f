package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"churnscore/pkg/errcodes"
)

// Error kinds of the scoring pipeline. Each implies a different remediation,
// so callers tell them apart with errors.Is.
var (
	// ErrUnknownCategory a categorical value was not seen during training.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrDimensionMismatch a vector disagrees with the fitted artifacts.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrArtifactLoad a serialized artifact is missing or corrupt.
	ErrArtifactLoad = errors.New("artifact load failure")
)

// AppError represents a domain error of the application.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// ErrorCode exposes the code to the HTTP layer.
func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

func UnknownCategory(feature, value string) *AppError {
	return WrapError(
		ErrUnknownCategory,
		errcodes.UnknownCategory,
		fmt.Sprintf("%s %q was not seen during training", feature, value),
	)
}

func DimensionMismatch(stage string, got, want int) *AppError {
	return WrapError(
		ErrDimensionMismatch,
		errcodes.DimensionMismatch,
		fmt.Sprintf("%s: got %d features, want %d", stage, got, want),
	)
}

// SchemaMismatch reports artifact drift that is not a plain length mismatch.
func SchemaMismatch(format string, args ...any) *AppError {
	return WrapError(ErrDimensionMismatch, errcodes.DimensionMismatch, fmt.Sprintf(format, args...))
}

// ArtifactLoad wraps a failure to read or validate the named artifact.
func ArtifactLoad(artifact string, err error) *AppError {
	return WrapError(
		fmt.Errorf("%w: %w", ErrArtifactLoad, err),
		errcodes.ArtifactLoadFailure,
		"artifact "+artifact,
	)
}

// GetCode extracts the error code if err is an AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}
