package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldArtifact        = "artifact"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldModelBackend    = "model-backend"
	FieldModelVersion    = "model-version"
	FieldPath            = "path"
	FieldProbability     = "probability"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldThreshold       = "threshold"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldVerdict         = "verdict"
)
