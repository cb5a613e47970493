// Copyright (c) 2026 Residents Book. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIntD(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty uses default", "", 7},
		{"blank uses default", "  ", 7},
		{"number", "3", 3},
		{"padded number", " 4 ", 4},
		{"negative", "-2", -2},
		{"garbage uses default", "3abc", 7},
		{"float uses default", "1.5", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToIntD(tt.input, 7))
		})
	}
}
