// Copyright (c) 2026 Residents Book. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Every rule is evaluated; a failing rule never short-circuits the chain, so
// the caller receives all violations together.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
)

// DefaultRequiredMessage is used by [Validator.Required] when no message is given.
const DefaultRequiredMessage = "This field is required"

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
// An empty message falls back to [DefaultRequiredMessage].
func (v *Validator) Required(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		if message == "" {
			message = DefaultRequiredMessage
		}
		v.add(field, message)
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// ContainsAny fails if value is non-empty and contains none of the substrings.
// An empty value passes: the rule only applies to optional fields that were filled.
//
// # Weakness
//
// This is a plausibility check, not URL parsing. "x.com" also matches
// "box.company.org".
func (v *Validator) ContainsAny(field, value, message string, substrings ...string) *Validator {
	if value == "" {
		return v
	}
	for _, s := range substrings {
		if strings.Contains(value, s) {
			return v
		}
	}
	v.add(field, message)
	return v
}

// MaxBytes fails if size is larger than max.
func (v *Validator) MaxBytes(field string, size, max int64, message string) *Validator {
	if size > max {
		v.add(field, message)
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("title", len(title) > 200, "Title is too long")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a CLIENT_VALIDATION_ERROR [apperr.AppError] if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ClientValidation("Validation failed", v.errs...)
}

// Errors returns a copy of the collected field errors in rule order.
func (v *Validator) Errors() []apperr.FieldError {
	if len(v.errs) == 0 {
		return nil
	}
	return append([]apperr.FieldError(nil), v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldMap indexes field errors by field name, keeping the first message per field.
func FieldMap(errs []apperr.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, exists := out[e.Field]; !exists {
			out[e.Field] = e.Message
		}
	}
	return out
}
