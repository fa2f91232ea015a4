package models

import (
	"errors"
	"strconv"
	"strings"
)

// FieldError is one rejected field. Path names the field with dots between
// levels and [i] for list elements, e.g. events[2].title.
type FieldError struct {
	Path    string
	Message string
	Cause   error
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationErrors collects every field failure found in one value, so a
// malformed payload is reported in full rather than one field at a time.
type ValidationErrors struct {
	Errors []FieldError
}

// Add records err under path. A nested *ValidationErrors is flattened with
// each of its paths prefixed by path.
func (v *ValidationErrors) Add(path string, err error) {
	if err == nil {
		return
	}
	var nested *ValidationErrors
	if errors.As(err, &nested) {
		for _, sub := range nested.Errors {
			sub.Path = joinPath(path, sub.Path)
			v.Errors = append(v.Errors, sub)
		}
		return
	}
	v.Errors = append(v.Errors, FieldError{Path: path, Message: err.Error(), Cause: err})
}

// AddAt records err for field of element i of list. An empty field refers
// to the element itself.
func (v *ValidationErrors) AddAt(list string, i int, field string, err error) {
	v.Add(joinPath(list+"["+strconv.Itoa(i)+"]", field), err)
}

// AddMessage records a failure that has no sentinel error.
func (v *ValidationErrors) AddMessage(path, message string) {
	if message == "" {
		return
	}
	v.Errors = append(v.Errors, FieldError{Path: path, Message: message})
}

// Err returns v as an error, or nil when nothing was recorded.
func (v *ValidationErrors) Err() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	if v == nil || len(v.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the recorded causes to errors.Is and errors.As.
func (v *ValidationErrors) Unwrap() []error {
	if v == nil {
		return nil
	}
	causes := make([]error, 0, len(v.Errors))
	for _, err := range v.Errors {
		if err.Cause != nil {
			causes = append(causes, err.Cause)
		}
	}
	return causes
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}
