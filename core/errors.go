package core

import "errors"

// ErrorKind classifies domain failures so callers can map them to
// transport-level responses without string matching.
type ErrorKind string

const (
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindIntegrity    ErrorKind = "integrity"
)

// DomainError is a tagged error carrying one of the domain failure kinds.
// Errors raised inside a transactional block still abort the transaction
// before propagating - the kind only tells the caller what went wrong.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) error {
	return &DomainError{Kind: ErrorKindNotFound, Message: message}
}

func NewValidationError(message string) error {
	return &DomainError{Kind: ErrorKindValidation, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &DomainError{Kind: ErrorKindUnauthorized, Message: message}
}

// NewIntegrityError marks stored-data inconsistencies, e.g. an account
// referencing a user that no longer exists.
func NewIntegrityError(message string) error {
	return &DomainError{Kind: ErrorKindIntegrity, Message: message}
}

// IsKind reports whether err (or anything it wraps) is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

func IsNotFoundError(err error) bool {
	return IsKind(err, ErrorKindNotFound)
}

func IsValidationError(err error) bool {
	return IsKind(err, ErrorKindValidation)
}

func IsUnauthorizedError(err error) bool {
	return IsKind(err, ErrorKindUnauthorized)
}

func IsIntegrityError(err error) bool {
	return IsKind(err, ErrorKindIntegrity)
}
