package domain

type ErrorCode string

const (
	ErrorCodeValidation          ErrorCode = "VALIDATION"
	ErrorCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrorCodeNotReviewable       ErrorCode = "NOT_REVIEWABLE"
	ErrorCodeUserExists          ErrorCode = "USER_EXISTS"
	ErrorCodeDuplicateHolding    ErrorCode = "DUPLICATE_HOLDING"
	ErrorCodeSuperAdminImmutable ErrorCode = "SUPER_ADMIN_IMMUTABLE"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	// Fields carries per-field validation messages for VALIDATION errors.
	Fields map[string]string
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

func NewValidationError(message string, fields map[string]string) *DomainError {
	return &DomainError{
		Code:    ErrorCodeValidation,
		Message: message,
		Fields:  fields,
	}
}
