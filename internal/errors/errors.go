// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, making it easier to handle different types of
// failures appropriately.
//
// The package supports wrapping underlying errors while maintaining error kind
// information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// FormatFailed indicates no viable (encoding, delimiter, header) combination
	// parsed the input file.
	FormatFailed Kind = "format_failed"
	// TranslationFailed indicates a translation batch exhausted its retry budget.
	TranslationFailed Kind = "translation_failed"
	// ConfigInvalid indicates a missing credential or a malformed target language.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// HasKind reports whether err carries the given kind anywhere in its chain.
func HasKind(err error, kind Kind) bool {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
