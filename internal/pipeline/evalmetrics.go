package pipeline

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
)

// AcceptanceMetric scores one pipeline run against a benchmark example.
type AcceptanceMetric interface {
	Name() string
	Evaluate(example models.Example, result *models.RunResult) (bool, error)
}

// NormalizeAnswer lowercases, strips punctuation, drops the articles
// a/an/the, and collapses whitespace. The same normalizer is applied to
// both sides of every comparison.
func NormalizeAnswer(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if f == "a" || f == "an" || f == "the" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// TokenF1 computes the multiset token overlap F1 between two strings
// after normalization. Either side empty scores 0.
func TokenF1(a, b string) float64 {
	aTokens := strings.Fields(NormalizeAnswer(a))
	bTokens := strings.Fields(NormalizeAnswer(b))
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(bTokens))
	for _, t := range bTokens {
		counts[t]++
	}

	common := 0
	for _, t := range aTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}
	if common == 0 {
		return 0
	}

	precision := float64(common) / float64(len(aTokens))
	recall := float64(common) / float64(len(bTokens))
	return 2 * precision * recall / (precision + recall)
}

// passageTitle extracts the title from a "<title> | <body>" passage. A
// passage without the delimiter is its own title.
func passageTitle(passage string) string {
	return strings.SplitN(passage, " | ", 2)[0]
}

// AnswerAndHopsMetric accepts a run when the answer exactly matches the
// gold answer (normalized), the answer is grounded in at least one context
// passage, and the hop queries stay short and non-repetitive.
type AnswerAndHopsMetric struct {
	MaxQueryLength      int
	SimilarityThreshold float64
}

func NewAnswerAndHopsMetric() *AnswerAndHopsMetric {
	return &AnswerAndHopsMetric{
		MaxQueryLength:      100,
		SimilarityThreshold: 0.8,
	}
}

func (m *AnswerAndHopsMetric) Name() string {
	return "answer_and_hops"
}

func (m *AnswerAndHopsMetric) Evaluate(example models.Example, result *models.RunResult) (bool, error) {
	if result == nil {
		return false, domain.ErrMissingRunResult
	}
	if !example.HasGoldAnswer() {
		return false, domain.NewDomainError(domain.ErrMissingGoldAnswer, fmt.Sprintf("example %s has no gold answer", example.ID))
	}

	gold := NormalizeAnswer(example.Answer)
	predicted := NormalizeAnswer(result.Answer)
	if predicted != gold {
		return false, nil
	}

	grounded := false
	for _, passage := range result.Context {
		if strings.Contains(NormalizeAnswer(passage), gold) {
			grounded = true
			break
		}
	}
	if !grounded {
		return false, nil
	}

	// Hop discipline runs over the question followed by the generated
	// queries. The repetition check deliberately starts at index 2: the
	// first generated query may legitimately restate the question.
	hops := append([]string{result.Question}, result.HopQueries...)

	for _, hop := range hops {
		if utf8.RuneCountInString(hop) > m.MaxQueryLength {
			return false, nil
		}
	}

	for idx := 2; idx < len(hops); idx++ {
		for prev := 0; prev < idx; prev++ {
			if TokenF1(hops[idx], hops[prev]) >= m.SimilarityThreshold {
				return false, nil
			}
		}
	}

	return true, nil
}

// GoldPassagesMetric accepts a run when every gold passage title appears
// among the titles of the retrieved context. Extra retrieved passages do
// not hurt: the check is subset, not equality.
type GoldPassagesMetric struct{}

func NewGoldPassagesMetric() *GoldPassagesMetric {
	return &GoldPassagesMetric{}
}

func (m *GoldPassagesMetric) Name() string {
	return "gold_passages_retrieved"
}

func (m *GoldPassagesMetric) Evaluate(example models.Example, result *models.RunResult) (bool, error) {
	if result == nil {
		return false, domain.ErrMissingRunResult
	}
	if !example.HasGoldTitles() {
		return false, domain.NewDomainError(domain.ErrMissingGoldTitles, fmt.Sprintf("example %s has no gold titles", example.ID))
	}

	found := make(map[string]struct{}, len(result.Context))
	for _, passage := range result.Context {
		found[NormalizeAnswer(passageTitle(passage))] = struct{}{}
	}

	for _, title := range example.GoldTitles {
		if _, ok := found[NormalizeAnswer(title)]; !ok {
			return false, nil
		}
	}
	return true, nil
}
