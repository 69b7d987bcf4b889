package models

import "time"

// RunResult is the outcome of one pipeline invocation. The Context holds the
// deduplicated, order-preserving accumulation of retrieved passages, and
// HopQueries is the trace of search queries issued, one per hop, in order.
// A RunResult is immutable once returned.
type RunResult struct {
	ID         string    `json:"id,omitempty"`
	Question   string    `json:"question"`
	Context    []string  `json:"context"`
	Answer     string    `json:"answer"`
	HopQueries []string  `json:"hop_queries,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	Duration   int64     `json:"duration_ms,omitempty"`
}

// EvaluationReport aggregates metric outcomes over a dataset.
type EvaluationReport struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errored  int     `json:"errored"`
	Score    float64 `json:"score"`
	Duration int64   `json:"duration_ms"`
}

// NewEvaluationReport computes the aggregate score for the given counts.
// Errored examples count against the score but are reported separately so
// infrastructure failures are distinguishable from metric failures.
func NewEvaluationReport(passed, failed, errored int, duration time.Duration) *EvaluationReport {
	total := passed + failed + errored
	score := 0.0
	if total > 0 {
		score = float64(passed) / float64(total)
	}
	return &EvaluationReport{
		Total:    total,
		Passed:   passed,
		Failed:   failed,
		Errored:  errored,
		Score:    score,
		Duration: duration.Milliseconds(),
	}
}
