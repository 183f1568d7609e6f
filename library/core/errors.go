package core

import "errors"

// Kinds of rule violations. Every error returned by a Decide function wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// RuleViolation is a business rule violation with a message meant for the end user.
type RuleViolation struct {
	Kind    error
	Message string
}

func (e RuleViolation) Error() string {
	return e.Message
}

func (e RuleViolation) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return RuleViolation{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return RuleViolation{Kind: ErrConflict, Message: message}
}

func InvalidState(message string) error {
	return RuleViolation{Kind: ErrInvalidState, Message: message}
}

func InvalidInput(message string) error {
	return RuleViolation{Kind: ErrInvalidInput, Message: message}
}

func Forbidden(message string) error {
	return RuleViolation{Kind: ErrForbidden, Message: message}
}
