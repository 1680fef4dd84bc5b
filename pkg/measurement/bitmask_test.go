package measurement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

const structuralBitmaskMsg = "A Bitmask `value` object must contain `keys` and `values` lists of equal length"

func TestBitmask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bitmask *Bitmask
		wantMsg string
	}{
		{"valid", NewBitmask().AddValue("a", true).AddValue("b", false), ""},
		{"empty", NewBitmask(), structuralBitmaskMsg},
		{"nil", nil, structuralBitmaskMsg},
		{"length mismatch", NewBitmask().SetKeys("a", "b").SetValues(true), structuralBitmaskMsg},
		{"no values", NewBitmask().SetKeys("a"), structuralBitmaskMsg},
		{"bad keys", BitmaskFrom(map[string]any{
			"keys":   []any{"a", 1},
			"values": []any{true, false},
		}), "Bitmask `keys` must be strings"},
		{"bad values", BitmaskFrom(map[string]any{
			"keys":   []any{"a", "b"},
			"values": []any{true, "yes"},
		}), "Bitmask `values` must be booleans"},
		{"structural before element type", BitmaskFrom(map[string]any{
			"keys":   []any{1},
			"values": []any{true, false},
		}), structuralBitmaskMsg},
		{"keys not a list", BitmaskFrom(map[string]any{
			"keys":   "a",
			"values": []any{true},
		}), structuralBitmaskMsg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bitmask.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, errors.Message(err))
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
		})
	}
}

func TestBitmask_SettersClearDecodeErrors(t *testing.T) {
	b := BitmaskFrom(map[string]any{"keys": []any{1}, "values": []any{"x"}})
	require.Error(t, b.Validate())

	b.SetKeys("a").SetValues(true)
	assert.NoError(t, b.Validate())
	assert.Equal(t, 1, b.Len())
}

func TestBitmask_JSON(t *testing.T) {
	data, err := json.Marshal(NewBitmask().AddValue("on", true).AddValue("off", false))
	require.NoError(t, err)
	assert.Equal(t, `{"keys":["on","off"],"values":[true,false]}`, string(data))
}
