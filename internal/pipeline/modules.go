package pipeline

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"
)

// TracedPredict wraps a dspy-go Predict module with pluggable tracing and
// metrics hooks.
type TracedPredict struct {
	*modules.Predict
	sig     Signature
	tracer  Tracer
	metrics MetricsCollector
}

// Option configures a TracedPredict module
type Option func(*TracedPredict)

// WithTracer sets a tracer for the module
func WithTracer(tracer Tracer) Option {
	return func(p *TracedPredict) {
		p.tracer = tracer
	}
}

// WithMetrics sets a metrics collector for the module
func WithMetrics(metrics MetricsCollector) Option {
	return func(p *TracedPredict) {
		p.metrics = metrics
	}
}

// NewTracedPredict creates a Predict module for the signature
func NewTracedPredict(sig Signature, opts ...Option) *TracedPredict {
	tp := &TracedPredict{
		Predict: modules.NewPredict(sig.Signature),
		sig:     sig,
	}

	for _, opt := range opts {
		opt(tp)
	}

	return tp
}

// PipelineSignature returns the wrapped signature
func (p *TracedPredict) PipelineSignature() Signature {
	return p.sig
}

// Process executes the prediction with tracing and metrics
func (p *TracedPredict) Process(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	var span Span
	if p.tracer != nil {
		span = p.tracer.StartSpan(ctx, p.sig.Name)
		defer span.End()
	}

	outputs, err := p.Predict.Process(ctx, inputs)

	if p.metrics != nil {
		p.metrics.RecordExecution(span, inputs, outputs, err)
	}

	if err != nil {
		if span != nil {
			span.SetError(err)
		}
		return nil, fmt.Errorf("predict process failed: %w", err)
	}

	return outputs, nil
}

// ToProgram wraps the module in a core.Program for use with dspy-go optimizers
func (p *TracedPredict) ToProgram(moduleName string) core.Program {
	mods := map[string]core.Module{
		moduleName: p.Predict,
	}

	forward := func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		anyInputs := make(map[string]any, len(inputs))
		for k, v := range inputs {
			anyInputs[k] = v
		}

		outputs, err := p.Process(ctx, anyInputs)
		if err != nil {
			return nil, err
		}

		result := make(map[string]interface{}, len(outputs))
		for k, v := range outputs {
			result[k] = v
		}
		return result, nil
	}

	return core.NewProgram(mods, forward)
}

// Tracer defines the interface for tracing module execution
type Tracer interface {
	StartSpan(ctx context.Context, name string) Span
}

// Span represents a traced execution span
type Span interface {
	End()
	SetError(err error)
	SetAttribute(key string, value any)
}

// MetricsCollector defines the interface for collecting metrics
type MetricsCollector interface {
	RecordExecution(span Span, inputs, outputs map[string]any, err error)
}

// NoOpTracer is a tracer that does nothing
type NoOpTracer struct{}

func (t *NoOpTracer) StartSpan(ctx context.Context, name string) Span {
	return &NoOpSpan{}
}

// NoOpSpan is a span that does nothing
type NoOpSpan struct{}

func (s *NoOpSpan) End()                               {}
func (s *NoOpSpan) SetError(err error)                 {}
func (s *NoOpSpan) SetAttribute(key string, value any) {}

// NoOpMetrics is a metrics collector that does nothing
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordExecution(span Span, inputs, outputs map[string]any, err error) {}
