package trade

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	t.Run("nil is absent", func(t *testing.T) {
		assert.Nil(t, ParseQuantity(nil))
	})

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 3, 3},
		{"float", 2.5, 2.5},
		{"numeric string", " 4.75 ", 4.75},
		{"thousands separator", "1,200", 1200},
		{"json number", json.Number("8"), 8},
		{"non numeric string", "abc", 0},
		{"empty string", "", 0},
		{"unsupported type", []int{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuantity(tt.in)
			require.NotNil(t, got)
			assert.True(t, dec(tt.want).Equal(*got), "got %s", got)
		})
	}
}
