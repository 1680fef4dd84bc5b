package measurement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

func TestDiscoveryResult_Validate(t *testing.T) {
	tests := []struct {
		name      string
		result    *DiscoveryResult
		wantField string
		wantMsg   string
	}{
		{
			name:   "active with moob",
			result: NewDiscoveryResult().SetActive(true).SetMoob("nginx"),
		},
		{
			name: "inactive with reason",
			result: NewDiscoveryResult().SetActive(false).SetReason(
				NewReason().SetRecoverable(true).SetMsg("not installed").SetType(ReasonMissingProcess)),
		},
		{
			name:   "inactive without moobs",
			result: NewDiscoveryResult().SetActive(false),
		},
		{
			name:   "inactive with empty moob is valid",
			result: NewDiscoveryResult().SetActive(false).SetMoob(""),
		},
		{
			name:      "active unset",
			result:    NewDiscoveryResult().SetMoob("nginx"),
			wantField: "active",
			wantMsg:   "Field `active` unset but required",
		},
		{
			name:      "active without moobs",
			result:    NewDiscoveryResult().SetActive(true),
			wantField: "moobs",
			wantMsg:   "No moobs provided for active DiscoveryResult, must set at least one moob with `SetMoob`",
		},
		{
			name:      "empty moob",
			result:    NewDiscoveryResult().SetActive(true).SetMoob("a").SetMoob(""),
			wantField: "moobs",
			wantMsg:   `Moob "" at index 1 must be a non-empty string`,
		},
		{
			name:      "incomplete reason",
			result:    NewDiscoveryResult().SetActive(false).SetReason(NewReason().SetRecoverable(true)),
			wantField: "msg",
			wantMsg:   "Field `msg` must be set to a string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantField, errors.Field(err))
			assert.Equal(t, tt.wantMsg, errors.Message(err))
		})
	}
}

func TestDiscoveryResult_JSON(t *testing.T) {
	d := NewDiscoveryResult().SetActive(true).SetMoob("db1").SetMoob("db2")
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"moobs":["db1","db2"],"active":true}`, string(data))

	d = NewDiscoveryResult().SetActive(false).
		SetReason(NewReason().SetRecoverable(false).SetMsg("m").SetType(ReasonTimeout))
	data, err = json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"reasonDetail":{"recoverable":false,"msg":"m","type":"Timeout"},"active":false}`, string(data))
}
