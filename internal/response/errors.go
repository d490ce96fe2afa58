package response

// Canonical user-visible error messages. Handlers map domain errors onto these
// so that no raw error text or stack trace ever reaches a response body.
const (
	MsgInvalidPayload     = "Invalid JSON in request body"
	MsgValidation         = "Validation failed"
	MsgInvalidID          = "Invalid ID format"
	MsgAllAnswered        = "All questions must be answered"
	MsgTemplateNotFound   = "Template not found"
	MsgResultNotFound     = "Result not found"
	MsgNoToken            = "No token provided"
	MsgInvalidToken       = "Invalid or expired token"
	MsgForbidden          = "Insufficient permissions"
	MsgEmailTaken         = "Email is already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgRateLimited        = "Too many requests, please try again later"
	MsgInternal           = "Internal server error"
)
