package services

import "errors"

// Sentinel errors returned by the services.
var (
	ErrEmptyIndex       = errors.New("search index has no entries")
	ErrUnknownAnchor    = errors.New("unknown section anchor")
	ErrInvalidTheme     = errors.New("theme must be light or dark")
	ErrSemanticDisabled = errors.New("semantic search is not enabled")
	ErrNoChoices        = errors.New("completion response has no choices")
	ErrSubmitInFlight   = errors.New("a message for this conversation is already being answered")
)

// Store operations, used as StoreError.Op.
const (
	OpThemeGet  = "theme.get"
	OpThemeSet  = "theme.set"
	OpThemeInit = "theme.init"
)

// StoreError wraps a backend failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }
