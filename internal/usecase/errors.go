package usecase

import (
	"fmt"

	"github.com/max-knopp/intellio/internal/entity"
)

// DomainError is a business-rule failure. It is terminal: the caller should
// not retry without changing the request.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (store, queue, third-party
// API). These are transient and safe to retry, since every transition is a
// full-state overwrite.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

var (
	ErrUnauthorized = &DomainError{Code: "UNAUTHORIZED", Message: "missing or invalid credentials"}
	ErrForbidden    = &DomainError{Code: "FORBIDDEN", Message: "not allowed to access this lead"}
	ErrLeadNotFound = &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
	ErrUserNotFound = &DomainError{Code: "USER_NOT_FOUND", Message: "user not found with provided email"}
)

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: "VALIDATION_ERROR", Message: msg}
}

// NewStateError reports an action attempted against a lead whose status no
// longer permits it.
func NewStateError(action string, status entity.LeadStatus) *DomainError {
	return &DomainError{
		Code:    "INVALID_STATE",
		Message: fmt.Sprintf("cannot %s a lead in status %q", action, status),
	}
}

func NewDependencyError(service, msg string) *TechnicalError {
	return &TechnicalError{
		Code:    "DEPENDENCY_ERROR",
		Message: service + ": " + msg,
	}
}
