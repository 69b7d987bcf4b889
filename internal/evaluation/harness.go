package evaluation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/longregen/multihop/internal/adapters/metrics"
	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
	"github.com/longregen/multihop/internal/pipeline"
	"github.com/longregen/multihop/internal/ports"
)

// Harness scores a pipeline over a benchmark dataset with a bounded worker
// pool. Collaborator failures are recorded as errored examples and the
// batch continues; only a cancelled context aborts the run.
type Harness struct {
	runner  ports.PipelineRunner
	metric  pipeline.AcceptanceMetric
	workers int
	queue   int
	logger  *slog.Logger
}

func NewHarness(runner ports.PipelineRunner, metric pipeline.AcceptanceMetric, workers, queueSize int) (*Harness, error) {
	if runner == nil {
		return nil, domain.NewDomainError(domain.ErrInvalidState, "harness requires a pipeline runner")
	}
	if metric == nil {
		return nil, domain.NewDomainError(domain.ErrInvalidState, "harness requires a metric")
	}
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Harness{
		runner:  runner,
		metric:  metric,
		workers: workers,
		queue:   queueSize,
		logger:  slog.Default(),
	}, nil
}

// Evaluate runs the pipeline once per example and aggregates outcomes.
func (h *Harness) Evaluate(ctx context.Context, ds ports.Dataset) (*models.EvaluationReport, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, domain.NewDomainError(domain.ErrEmptyDataset, "evaluation requires a non-empty dataset")
	}

	start := time.Now()
	ds.Reset()

	jobs := make(chan models.Example, h.queue)

	var mu sync.Mutex
	var passed, failed, errored int

	var wg sync.WaitGroup
	for i := 0; i < h.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ex := range jobs {
				outcome := h.evaluateOne(ctx, ex)

				mu.Lock()
				switch outcome {
				case outcomePassed:
					passed++
				case outcomeFailed:
					failed++
				case outcomeErrored:
					errored++
				}
				mu.Unlock()

				metrics.EvaluationExamplesTotal.WithLabelValues(h.metric.Name(), string(outcome)).Inc()
			}
		}()
	}

	var feedErr error
feed:
	for {
		ex, ok := ds.Next()
		if !ok {
			break
		}
		select {
		case jobs <- ex:
		case <-ctx.Done():
			feedErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if feedErr != nil {
		return nil, feedErr
	}
	return models.NewEvaluationReport(passed, failed, errored, time.Since(start)), nil
}

type outcome string

const (
	outcomePassed  outcome = "passed"
	outcomeFailed  outcome = "failed"
	outcomeErrored outcome = "errored"
)

func (h *Harness) evaluateOne(ctx context.Context, ex models.Example) outcome {
	result, err := h.runner.Run(ctx, ex.Question)
	if err != nil {
		h.logger.Warn("pipeline run failed", "example", ex.ID, "error", err)
		return outcomeErrored
	}

	ok, err := h.metric.Evaluate(ex, result)
	if err != nil {
		h.logger.Warn("metric evaluation failed", "example", ex.ID, "metric", h.metric.Name(), "error", err)
		return outcomeErrored
	}
	if ok {
		return outcomePassed
	}
	return outcomeFailed
}
