// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers.

It wraps google/uuid to generate Version 7 values, used for request ids,
browser session ids, and the record ids of the local stub API.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Compact: 128-bit values with the standard textual form.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Inspection

// Valid reports whether s is a UUID in any of the accepted textual forms.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
