package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Churn scoring.
	InvalidCustomer     failure.ErrorCode = "InvalidCustomer"
	UnknownCategory     failure.ErrorCode = "UnknownCategory"
	DimensionMismatch   failure.ErrorCode = "DimensionMismatch"
	ArtifactLoadFailure failure.ErrorCode = "ArtifactLoadFailure"
	InferenceFailure    failure.ErrorCode = "InferenceFailure"
)
