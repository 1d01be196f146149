package model

// Standard error codes surfaced during a conversation turn.
const (
	ErrCodeInvalidTimeFormat = "INVALID_TIME_FORMAT"
	ErrCodeOutsideHours      = "OUTSIDE_BUSINESS_HOURS"
	ErrCodeInsufficientLead  = "INSUFFICIENT_LEAD_TIME"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeEmptyOrder        = "EMPTY_ORDER"
	ErrCodePersistence       = "PERSISTENCE_FAILURE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a user-facing message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Hour and lead-time rejections carry configured
// values in their messages, so the pickup validator constructs those itself.
var (
	ErrInvalidTimeFormat = NewDomainError(ErrCodeInvalidTimeFormat, "Invalid time format, use HH:MM")
	ErrItemNotFound      = NewDomainError(ErrCodeItemNotFound, "Sorry, that item is not on our menu")
	ErrEmptyOrder        = NewDomainError(ErrCodeEmptyOrder, "An order needs at least one item")
)
