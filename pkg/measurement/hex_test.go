package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0xabc", true},
		{"0x0F", false},
		{"0xFF", false},
		{"0x0", true},
		{"0x00", false},
		{"0xqqq", false},
		{"abc", false},
		{"", false},
		{"0x", false},
		{"0x1f", true},
		{"0x01", false},
		{"0x+1", false},
		{"0X1f", false},
		{"0xfffffffffffff", true},
		{"0x20000000000000", true},
		{"0x20000000000001", false},
		{"0xffffffffffffffffffff", false},
		{"0x100000000000000000000", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHex(tt.input))
		})
	}
}

func TestToHex(t *testing.T) {
	assert.Equal(t, "0x0", ToHex(0))
	assert.Equal(t, "0xff", ToHex(255))
	assert.Equal(t, Hex("0x10"), HexOf(16))
	assert.True(t, IsHex(ToHex(4096)))
}
