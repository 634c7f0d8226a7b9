package provider

import (
	"context"

	"github.com/skawahara/memoflow/pkg/memoflow/observability"
)

// Instrumented wraps a Provider and records a metric per call.
type Instrumented struct {
	inner   Provider
	metrics observability.MetricsRecorder
	nodeID  func(ctx context.Context) string
}

// Instrument wraps p so every Complete call is recorded. nodeID
// extracts the calling node from the context for the metric label; nil
// labels all calls with an empty node.
func Instrument(p Provider, m observability.MetricsRecorder, nodeID func(ctx context.Context) string) *Instrumented {
	if m == nil {
		m = observability.NoopMetrics{}
	}
	return &Instrumented{inner: p, metrics: m, nodeID: nodeID}
}

// Name implements Provider.
func (p *Instrumented) Name() string { return p.inner.Name() }

// Complete implements Provider.
func (p *Instrumented) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.inner.Complete(ctx, req)

	node := ""
	if p.nodeID != nil {
		node = p.nodeID(ctx)
	}
	var tokens int64
	if resp != nil {
		tokens = int64(resp.Usage.Total)
	}
	p.metrics.RecordProviderCall(ctx, node, tokens, err)

	return resp, err
}
