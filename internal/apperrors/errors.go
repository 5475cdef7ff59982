package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Warn is a single validation message, either global (no field) or bound to a
// field. Message is a message key resolved by the caller; Args carry the
// positional message arguments.
type Warn struct {
	Field   string
	Message string
	Args    []string
}

// IsGlobal reports whether the warn is not associated with a field.
func (w Warn) IsGlobal() bool {
	return w.Field == ""
}

// ValidationError is a recoverable, caller-caused failure carrying one or
// more global/field warns. It matches ErrValidation under errors.Is and must
// not be logged above warning level.
type ValidationError struct {
	Warns []Warn
}

func (e *ValidationError) Error() string {
	if g := e.GlobalError(); g != nil {
		return g.Message
	}
	if len(e.Warns) > 0 {
		return e.Warns[0].Message
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// GlobalError returns the first global warn, or nil.
func (e *ValidationError) GlobalError() *Warn {
	for i := range e.Warns {
		if e.Warns[i].IsGlobal() {
			return &e.Warns[i]
		}
	}
	return nil
}

// FieldError returns the first warn bound to the given field, or nil.
func (e *ValidationError) FieldError(field string) *Warn {
	for i := range e.Warns {
		if e.Warns[i].Field == field {
			return &e.Warns[i]
		}
	}
	return nil
}

// FieldErrors returns every warn bound to a field.
func (e *ValidationError) FieldErrors() []Warn {
	var out []Warn
	for _, w := range e.Warns {
		if !w.IsGlobal() {
			out = append(out, w)
		}
	}
	return out
}

// NewValidation returns a ValidationError with a single global warn.
func NewValidation(message string, args ...string) error {
	return &ValidationError{Warns: []Warn{{Message: message, Args: args}}}
}

// NewFieldValidation returns a ValidationError with a single field warn.
func NewFieldValidation(field, message string, args ...string) error {
	return &ValidationError{Warns: []Warn{{Field: field, Message: message, Args: args}}}
}

// NotFoundError reports a missing entity, carrying the sought identifier.
// It matches both ErrNotFound and ErrValidation under errors.Is, since a
// lookup miss is recoverable and caller-caused.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrValidation
}

// NewNotFound returns a NotFoundError for the given entity kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvocationError wraps an unexpected, unrecoverable failure. It is logged
// as an error and surfaced to callers as an opaque failure.
type InvocationError struct {
	Message string
	Cause   error
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// NewInvocation wraps cause as an InvocationError.
func NewInvocation(message string, cause error) error {
	return &InvocationError{Message: message, Cause: cause}
}

// Validator stacks warns across several checks and reports them together,
// so a single validation pass can surface multiple errors.
type Validator struct {
	warns []Warn
}

// Check stacks a global warn when ok is false.
func (v *Validator) Check(ok bool, message string, args ...string) *Validator {
	if !ok {
		v.warns = append(v.warns, Warn{Message: message, Args: args})
	}
	return v
}

// CheckField stacks a field warn when ok is false.
func (v *Validator) CheckField(ok bool, field, message string, args ...string) *Validator {
	if !ok {
		v.warns = append(v.warns, Warn{Field: field, Message: message, Args: args})
	}
	return v
}

// Verify returns a ValidationError when any warn has been stacked, nil otherwise.
func (v *Validator) Verify() error {
	if len(v.warns) == 0 {
		return nil
	}
	return &ValidationError{Warns: v.warns}
}

// Validate runs fn against a fresh Validator and returns the stacked result.
func Validate(fn func(v *Validator)) error {
	v := &Validator{}
	fn(v)
	return v.Verify()
}
