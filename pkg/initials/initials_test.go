// Copyright (c) 2026 Residents Book. All rights reserved.

package initials_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abhay4510/residents-book/pkg/initials"
)

/*
TestOf checks the avatar letter for a range of names.
*/
func TestOf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii", "ada", "A"},
		{"already_upper", "Grace", "G"},
		{"leading_space", "  linus", "L"},
		{"decomposed_accent", "e\u0301mile", "\u00c9"},
		{"composed_accent", "\u00e9mile", "\u00c9"},
		{"non_latin", "ωmega", "Ω"},
		{"punctuation_prefix", "'jo", "J"},
		{"empty", "", initials.Placeholder},
		{"only_spaces", "   ", initials.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, initials.Of(tt.input))
		})
	}
}
