package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/collector-sdk/pkg/collector"
	"github.com/NVIDIA/collector-sdk/pkg/filter"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/protocol"
	"github.com/NVIDIA/collector-sdk/pkg/schedule"
)

type app struct {
	t          *protocol.Transport
	registry   *prometheus.Registry
	metrics    *selfMetrics
	newFactory func(*config) collector.Factory
	now        func() time.Time
}

func newApp(t *protocol.Transport) *app {
	reg := prometheus.NewRegistry()
	return &app{
		t:          t,
		registry:   reg,
		metrics:    newSelfMetrics(reg),
		newFactory: defaultFactory,
		now:        time.Now,
	}
}

// mux registers the entrypoints:
//
//	sysmar discover   report which collectors apply to this host
//	sysmar collect    collect everything once and export last_run
//	sysmar carousel   run collectors in turn over the configured interval
func (a *app) mux(opts ...schedule.Option) *schedule.Mux {
	return schedule.NewMux(name, opts...).
		Register("discover", a.discover).
		Register("collect", a.collect).
		Register("carousel", a.carousel)
}

func (a *app) config() (*config, error) {
	cfg := &config{}
	if err := a.t.DecodeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// collectors returns the host collectors selected by cfg.Collectors.
func (a *app) collectors(cfg *config) []collector.Named {
	f := a.newFactory(cfg)
	all := []collector.Named{
		{Name: "os", Collector: f.CreateOSCollector()},
		{Name: "systemd", Collector: f.CreateSystemDCollector()},
		{Name: "process", Collector: f.CreateProcessCollector()},
	}
	if len(cfg.Collectors) == 0 {
		return all
	}
	selected := make([]collector.Named, 0, len(all))
	for _, c := range all {
		if filter.MatchesAny(c.Name, cfg.Collectors) {
			selected = append(selected, c)
		}
	}
	return selected
}

func (a *app) discover(ctx context.Context, _ []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	res, err := collector.Discover(ctx, a.collectors(cfg)...)
	if err != nil {
		return err
	}
	return a.t.SendDiscovery(res)
}

func (a *app) collect(ctx context.Context, _ []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	batch := a.run(ctx, "collect", a.collectors(cfg)...)
	self, err := a.newFactory(cfg).CreateGathererCollector(a.registry).Collect(ctx)
	if err != nil {
		slog.Warn("failed to read self metrics", "error", err)
	} else {
		batch.Merge(self)
	}

	if err := a.send(cfg, batch); err != nil {
		return err
	}
	cfg.LastRun = a.now().Unix()
	return a.t.ExportConfig(cfg)
}

func (a *app) carousel(ctx context.Context, _ []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	interval, err := cfg.interval()
	if err != nil {
		return err
	}

	err = schedule.Carousel(ctx, interval, func(ctx context.Context, c collector.Named) {
		if err := a.send(cfg, a.run(ctx, c.Name, c)); err != nil {
			slog.Error("failed to send batch", "collector", c.Name, "error", err)
		}
	}, a.collectors(cfg))
	// stopped by a signal or the parent's deadline
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// run gathers collectors and records the run in the self metrics. Collector
// failures are logged; whatever was collected is returned.
func (a *app) run(ctx context.Context, run string, collectors ...collector.Named) *measurement.Batch {
	start := a.now()
	batch, err := collector.Gather(ctx, collectors...)
	if err != nil {
		slog.Warn("collection incomplete", "run", run, "error", err)
	}
	a.metrics.observe(run, err, a.now().Sub(start), batch.Len())
	return batch
}

// send drops excluded metrics and writes the batch.
func (a *app) send(cfg *config, b *measurement.Batch) error {
	out := measurement.NewBatch().AddEvent(b.Events...)
	for _, m := range b.Metrics {
		if m.Name != nil && !filter.Pass(*m.Name, cfg.Exclude) {
			continue
		}
		out.AddMetric(m)
	}
	return a.t.SendBatch(out)
}
