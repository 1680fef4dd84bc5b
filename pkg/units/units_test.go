package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"512", 512},
		{"512b", 512},
		{"512 bytes", 512},
		{"1k", 1024},
		{"5 Kb", 5120},
		{"2KiB", 2048},
		{"12.3Kb", 12595},
		{"10Mb", 10485760},
		{"1.5 MiB", 1572864},
		{"10Mbps", 10485760},
		{"1G", 1073741824},
		{"2gib", 2147483648},
		{"7 furlongs", 7},
		{"0.4", 0},
		{"0.5k", 512},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHumanSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHumanSize_Invalid(t *testing.T) {
	for _, input := range []string{"", "kb", "1.2.3k"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseHumanSize(input)
			assert.Error(t, err)
		})
	}
}
