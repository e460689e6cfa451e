package errors

import (
	// Go Internal Packages
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error so transport layers can map it to a
// response code without string matching.
type Kind int

const (
	Other Kind = iota
	Invalid
	NotFound
	Conflict
	Unauthorized
	Unprocessable
	Internal
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case Unprocessable:
		return "unprocessable"
	case Internal:
		return "internal"
	default:
		return "other"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error with the given kind, message and optional cause.
func E(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain,
// or Other if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers do not need both this package and the
// standard library errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

// ValidationErrors collects per-field validation failures.
type ValidationErrors struct {
	fields map[string][]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{fields: make(map[string][]string)}
}

func (v *ValidationErrors) Add(field, message string) {
	v.fields[field] = append(v.fields[field], message)
}

func (v *ValidationErrors) Empty() bool { return len(v.fields) == 0 }

// Err returns nil when no failures were recorded, otherwise an error
// listing every field failure in a stable order.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}

	fields := make([]string, 0, len(v.fields))
	for field := range v.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v.fields[field], ", ")))
	}
	return errors.New(strings.Join(parts, "; "))
}
