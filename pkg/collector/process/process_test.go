package process

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/proc"
)

func TestCollector_CollectChecks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	c := &Collector{
		Source: "node-1",
		Checks: map[string]string{
			"ok":   "exit 0",
			"fail": "echo broken >&2; exit 3",
		},
	}
	batch, err := c.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Metrics, 2)
	// sorted by check name
	assert.Equal(t, "fail", *batch.Metrics[0].Key)
	assert.Equal(t, measurement.Number(3), batch.Metrics[0].Data)
	assert.Equal(t, measurement.Number(0), batch.Metrics[1].Data)

	require.Len(t, batch.Events, 2)
	assert.Equal(t, measurement.SeverityCritical, batch.Events[0].Severity)
	assert.Equal(t, "broken\n", batch.Events[0].Tags["stderr"])
	assert.Equal(t, measurement.SeverityClear, batch.Events[1].Severity)
	assert.Equal(t, "check.ok", *batch.Events[1].Check)

	for _, m := range batch.Metrics {
		assert.NoError(t, m.Validate())
		assert.Equal(t, "node-1", *m.Source)
	}
	for _, e := range batch.Events {
		assert.NoError(t, e.Validate())
	}
}

func TestCollector_CollectProcesses(t *testing.T) {
	if runtime.GOOS != "linux" || !proc.HasCommand("pgrep") {
		t.Skip("requires pgrep")
	}

	c := &Collector{Source: "node-1", Processes: []string{"no-such-process-sysmar-test"}}
	batch, err := c.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Metrics, 1)
	assert.Equal(t, measurement.Boolean(false), batch.Metrics[0].Data)
	require.Len(t, batch.Events, 1)
	assert.Equal(t, measurement.SeverityCritical, batch.Events[0].Severity)
	assert.Equal(t, measurement.DedupeKey("node-1", "process", "no-such-process-sysmar-test"),
		*batch.Events[0].DedupeKey)
}

func TestCollector_Discover(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		res, err := (&Collector{}).Discover(context.Background())
		require.NoError(t, err)
		require.NoError(t, res.Validate())
		assert.False(t, *res.Active)
		assert.Equal(t, measurement.ReasonMissingConfig, *res.ReasonDetail.Type)
	})

	t.Run("checks only", func(t *testing.T) {
		res, err := (&Collector{Checks: map[string]string{"x": "true"}}).Discover(context.Background())
		require.NoError(t, err)
		require.NoError(t, res.Validate())
		assert.True(t, *res.Active)
		assert.Equal(t, []string{MoobProcess}, res.Moobs)
	})
}
