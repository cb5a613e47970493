// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package slice complements the standard [slices] package with a generic Map,
used to turn domain records into view models.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
// A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}
