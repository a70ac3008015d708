package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"

	FieldUtterance   = "utterance"
	FieldConfidence  = "confidence"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
)

// Components defines standard component names, one per binary
const (
	ComponentServer = "server"
	ComponentWorker = "worker"
)
