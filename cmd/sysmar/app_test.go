package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/collector-sdk/pkg/collector"
	"github.com/NVIDIA/collector-sdk/pkg/collector/gatherer"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/protocol"
	"github.com/NVIDIA/collector-sdk/pkg/schedule"
)

type fakeCollector struct {
	name  string
	err   error
	calls int
}

func (f *fakeCollector) Collect(context.Context) (*measurement.Batch, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return measurement.NewBatch().
		AddMetric(measurement.NewMetric().SetName(f.name + ".up").SetData(1)).
		AddMetric(measurement.NewMetric().SetName(f.name + ".noise").SetData(2)), nil
}

func (f *fakeCollector) Discover(context.Context) (*measurement.DiscoveryResult, error) {
	if f.err != nil {
		return measurement.NewDiscoveryResult().SetActive(false).SetReason(
			measurement.NewReason().SetMsg(f.err.Error()).SetType(measurement.ReasonMissingProcess)), nil
	}
	return measurement.NewDiscoveryResult().SetActive(true).SetMoob(f.name), nil
}

type fakeFactory struct {
	os, systemd, process *fakeCollector
}

func (f *fakeFactory) CreateOSCollector() collector.Collector      { return f.os }
func (f *fakeFactory) CreateSystemDCollector() collector.Collector { return f.systemd }
func (f *fakeFactory) CreateProcessCollector() collector.Collector { return f.process }
func (f *fakeFactory) CreateGathererCollector(g prometheus.Gatherer) collector.Collector {
	return &gatherer.Collector{Gatherer: g, Prefix: name}
}

type line struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func readLines(t *testing.T, out *bytes.Buffer) []line {
	t.Helper()
	var lines []line
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var l line
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l), sc.Text())
		lines = append(lines, l)
	}
	return lines
}

func newTestApp(input string) (*app, *fakeFactory, *bytes.Buffer) {
	out := &bytes.Buffer{}
	t := protocol.New(protocol.WithInput(strings.NewReader(input)), protocol.WithOutput(out))
	a := newApp(t)
	f := &fakeFactory{
		os:      &fakeCollector{name: "os"},
		systemd: &fakeCollector{name: "systemd", err: errors.New("no bus")},
		process: &fakeCollector{name: "process"},
	}
	a.newFactory = func(*config) collector.Factory { return f }
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a, f, out
}

func TestApp_Discover(t *testing.T) {
	a, _, out := newTestApp(`{"config": {"collectors": ["os", "systemd"]}}`)
	require.NoError(t, a.discover(context.Background(), nil))

	lines := readLines(t, out)
	require.Len(t, lines, 1)
	assert.Equal(t, "discovery", lines[0].Type)
	assert.JSONEq(t, `{"moobs":["os"],"active":true}`, string(lines[0].Value))
}

func TestApp_Collect(t *testing.T) {
	a, f, out := newTestApp(`{"config": {"exclude": ["noise$"], "units": ["kubelet.service"]}}`)
	require.NoError(t, a.collect(context.Background(), nil))
	assert.Equal(t, 1, f.os.calls)
	assert.Equal(t, 1, f.process.calls)

	lines := readLines(t, out)
	require.Len(t, lines, 2)

	assert.Equal(t, "metrics", lines[0].Type)
	var metrics []map[string]any
	require.NoError(t, json.Unmarshal(lines[0].Value, &metrics))
	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m["metric"].(string))
	}
	assert.Contains(t, names, "os.up")
	assert.Contains(t, names, "process.up")
	assert.NotContains(t, names, "os.noise")
	assert.Contains(t, names, "sysmar.runs_total")

	assert.Equal(t, "config", lines[1].Type)
	assert.JSONEq(t, `{"units":["kubelet.service"],"exclude":["noise$"],"last_run":1700000000}`,
		string(lines[1].Value))
}

func TestApp_CollectInvalidConfig(t *testing.T) {
	a, _, _ := newTestApp(`{"config": {"units": "containerd.service"}}`)
	assert.Error(t, a.collect(context.Background(), nil))
}

func TestApp_Carousel(t *testing.T) {
	a, f, out := newTestApp(`{"config": {"interval": "30ms", "collectors": ["/^(os|process)$/"]}}`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, a.carousel(ctx, nil))

	assert.GreaterOrEqual(t, f.os.calls, 1)
	assert.GreaterOrEqual(t, f.process.calls, 1)
	assert.Zero(t, f.systemd.calls)
	for _, l := range readLines(t, out) {
		assert.Equal(t, "metrics", l.Type)
	}
}

func TestApp_CarouselInvalidInterval(t *testing.T) {
	a, _, _ := newTestApp(`{"config": {"interval": "soon"}}`)
	assert.Error(t, a.carousel(context.Background(), nil))
}

func TestApp_Mux(t *testing.T) {
	a, _, out := newTestApp(`{"config": {}}`)
	code := -1
	mux := a.mux(schedule.WithExit(func(c int) { code = c }))

	assert.ElementsMatch(t, []string{"discover", "collect", "carousel"}, mux.Names())
	assert.False(t, mux.Run(context.Background(), []string{name, "unknown"}))
	assert.Equal(t, -1, code)

	assert.True(t, mux.Run(context.Background(), []string{name, "discover"}))
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"type":"discovery"`)
}
