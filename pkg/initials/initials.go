// Copyright (c) 2026 Residents Book. All rights reserved.

// Package initials derives the letter shown in a generated avatar.
//
// # Usage
//
// Residents without a profile image get a round badge holding the first
// letter of their first name. This package handles normalization so that
// composed and decomposed accents ("É" vs "E" + U+0301) render the same.
package initials

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is shown when there is no usable letter (e.g. an empty form).
const Placeholder = "?"

var upper = cases.Upper(language.Und)

// Of returns the upper-cased first letter of name.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC so a base letter and its combining marks form one rune.
// 2. Skips leading spaces and punctuation.
// 3. Upper-cases the first letter or digit with Unicode case rules.
//
// It returns [Placeholder] when name holds no letter or digit.
func Of(name string) string {
	normalized := norm.NFC.String(strings.TrimSpace(name))

	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return upper.String(string(r))
		}
	}

	return Placeholder
}
