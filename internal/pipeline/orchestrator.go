package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/longregen/multihop/internal/adapters/metrics"
	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
	"github.com/longregen/multihop/internal/ports"
)

// Orchestrator runs the multi-hop retrieval loop: each hop generates a
// search query from the context gathered so far, retrieves passages, and
// folds them into the context with order-preserving dedup. After the last
// hop the answer is generated from the full context.
//
// Hops within a run are strictly sequential. The orchestrator keeps no
// state across Run calls, so concurrent runs are safe whenever the
// collaborators are.
type Orchestrator struct {
	queryGens      []ports.QueryGenerator
	retriever      ports.PassageRetriever
	answerGen      ports.AnswerGenerator
	passagesPerHop int
	ids            ports.IDGenerator
}

// NewOrchestrator builds an orchestrator with one query generator per hop.
// len(queryGens) == 0 is valid: the answer is generated from empty context.
func NewOrchestrator(queryGens []ports.QueryGenerator, retriever ports.PassageRetriever, answerGen ports.AnswerGenerator, passagesPerHop int, ids ports.IDGenerator) (*Orchestrator, error) {
	if passagesPerHop < 1 {
		return nil, domain.NewDomainError(domain.ErrInvalidPassageCount, fmt.Sprintf("passages per hop must be positive, got %d", passagesPerHop))
	}
	if len(queryGens) > 0 && retriever == nil {
		return nil, domain.NewDomainError(domain.ErrInvalidState, "retriever is required when hops are configured")
	}
	if answerGen == nil {
		return nil, domain.NewDomainError(domain.ErrInvalidState, "answer generator is required")
	}
	for i, qg := range queryGens {
		if qg == nil {
			return nil, domain.NewDomainError(domain.ErrInvalidState, fmt.Sprintf("query generator for hop %d is nil", i))
		}
	}

	return &Orchestrator{
		queryGens:      queryGens,
		retriever:      retriever,
		answerGen:      answerGen,
		passagesPerHop: passagesPerHop,
		ids:            ids,
	}, nil
}

// MaxHops returns the number of configured hops
func (o *Orchestrator) MaxHops() int {
	return len(o.queryGens)
}

// Run executes the full pipeline for one question. Collaborator errors
// fail the run immediately; retries belong inside the collaborator
// clients, not here.
func (o *Orchestrator) Run(ctx context.Context, question string) (*models.RunResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	started := time.Now()
	passages := []string{}
	hopQueries := make([]string, 0, len(o.queryGens))

	for hop, queryGen := range o.queryGens {
		query, err := queryGen.GenerateQuery(ctx, passages, question)
		if err != nil {
			metrics.RunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("hop %d: query generation failed: %w", hop, err)
		}
		hopQueries = append(hopQueries, query)

		retrieved, err := o.retriever.Retrieve(ctx, query, o.passagesPerHop)
		if err != nil {
			metrics.RunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("hop %d: retrieval failed: %w", hop, err)
		}

		passages = dedupe(append(passages, retrieved...))
	}

	answer, err := o.answerGen.GenerateAnswer(ctx, passages, question)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	duration := time.Since(started)
	metrics.RunsTotal.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(duration.Seconds())
	metrics.HopsPerRun.Observe(float64(len(o.queryGens)))

	result := &models.RunResult{
		Question:   question,
		Context:    passages,
		Answer:     answer,
		HopQueries: hopQueries,
		StartedAt:  started,
		Duration:   duration.Milliseconds(),
	}
	if o.ids != nil {
		result.ID = o.ids.GenerateRunID()
	}
	return result, nil
}

// dedupe removes duplicates keeping the first occurrence of each passage.
// Already-deduplicated prefixes pass through unchanged, so folding the
// next hop's results into the accumulated context never reorders it.
func dedupe(passages []string) []string {
	seen := make(map[string]struct{}, len(passages))
	out := make([]string, 0, len(passages))
	for _, p := range passages {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
