package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Form holds submitted input values and the error marks produced by the last
// validation pass. A radio group with nothing selected is an absent value.
type Form struct {
	values map[string]string
	errors map[string]string
}

func NewForm(values map[string]string) *Form {
	form := &Form{
		values: make(map[string]string, len(values)),
		errors: make(map[string]string),
	}
	for field, value := range values {
		form.values[field] = value
	}
	return form
}

// Get returns the value with surrounding whitespace removed.
func (f *Form) Get(field string) string {
	return strings.TrimSpace(f.values[field])
}

func (f *Form) Set(field, value string) {
	f.values[field] = value
}

func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.values))
	for field, value := range f.values {
		values[field] = value
	}
	return values
}

func (f *Form) MarkError(field, message string) {
	f.errors[field] = message
}

func (f *Form) ClearError(field string) {
	delete(f.errors, field)
}

func (f *Form) ClearErrors() {
	clear(f.errors)
}

func (f *Form) Error(field string) (string, bool) {
	message, ok := f.errors[field]
	return message, ok
}

func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// FieldErrors returns the current marks ordered by field name.
func (f *Form) FieldErrors() []FieldError {
	fields := make([]string, 0, len(f.errors))
	for field := range f.errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	fieldErrors := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: f.errors[field]})
	}
	return fieldErrors
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var ErrInvalidForm = errors.New("form has validation errors")

// ValidationError is returned when a submission is rejected. It wraps
// ErrInvalidForm so callers can test with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(form *Form) *ValidationError {
	return &ValidationError{Fields: form.FieldErrors()}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidForm.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidForm
}
