package pipeline

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Kinnairdy Castle", "kinnairdy castle"},
		{"strips punctuation", "St. Andrew's, really!", "st andrews really"},
		{"drops articles", "the quick brown fox jumps over a lazy dog", "quick brown fox jumps over lazy dog"},
		{"article an", "an apple", "apple"},
		{"collapses whitespace", "  too   many\tspaces  ", "too many spaces"},
		{"empty", "", ""},
		{"only articles and punctuation", "the a an ...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAnswer(tt.in); got != tt.want {
				t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenF1(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "alpha beta", "alpha beta", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"both empty", "", "", 0.0},
		{"one empty", "alpha", "", 0.0},
		{"half overlap", "alpha beta", "alpha gamma", 0.5},
		{"exactly 0.8", "alpha beta gamma delta", "alpha beta gamma delta epsilon zeta", 0.8},
		{"case and punctuation ignored", "Alpha, Beta!", "alpha beta", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenF1(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TokenF1(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenF1_MultisetCounts(t *testing.T) {
	// repeated tokens only match as many times as they occur on both sides
	got := TokenF1("alpha alpha", "alpha beta")
	want := 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("TokenF1 = %f, want %f", got, want)
	}
}

func TestPassageTitle(t *testing.T) {
	tests := []struct {
		name    string
		passage string
		want    string
	}{
		{"title and body", "Kinnairdy Castle | a tower house", "Kinnairdy Castle"},
		{"delimiter in body kept", "a | b | c", "a"},
		{"no delimiter", "just some text", "just some text"},
		{"pipe without spaces is not a delimiter", "a|b", "a|b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := passageTitle(tt.passage); got != tt.want {
				t.Errorf("passageTitle(%q) = %q, want %q", tt.passage, got, tt.want)
			}
		})
	}
}

func gregoryExample() models.Example {
	return models.Example{
		ID:       "mhe_gregory",
		Question: "What castle did David Gregory inherit?",
		Answer:   "Kinnairdy Castle",
		GoldTitles: []string{
			"David Gregory (physician)",
			"Kinnairdy Castle",
		},
	}
}

func gregoryResult() *models.RunResult {
	return &models.RunResult{
		Question: "What castle did David Gregory inherit?",
		Context: []string{
			"David Gregory (physician) | David Gregory inherited Kinnairdy Castle in 1664.",
			"Kinnairdy Castle | Kinnairdy Castle is a tower house in Aberdeenshire.",
		},
		Answer: "Kinnairdy Castle",
		HopQueries: []string{
			"David Gregory castle inheritance",
			"Kinnairdy Castle location history",
		},
	}
}

func TestAnswerAndHopsMetric_Accepts(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	ok, err := metric.Evaluate(gregoryExample(), gregoryResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected acceptance")
	}
}

func TestAnswerAndHopsMetric_WrongAnswer(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	result.Answer = "Edinburgh Castle"

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected rejection for wrong answer")
	}
}

func TestAnswerAndHopsMetric_AnswerNormalization(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	result.Answer = "the kinnairdy castle."

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected acceptance after normalization")
	}
}

func TestAnswerAndHopsMetric_AnswerNotGrounded(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	result.Context = []string{"Unrelated | nothing about castles here"}

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected rejection when answer is not grounded in context")
	}
}

func TestAnswerAndHopsMetric_QueryLengthBoundary(t *testing.T) {
	metric := NewAnswerAndHopsMetric()

	t.Run("100 runes passes", func(t *testing.T) {
		result := gregoryResult()
		result.HopQueries[1] = strings.Repeat("q", 100)
		ok, err := metric.Evaluate(gregoryExample(), result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("query of exactly 100 runes should pass")
		}
	})

	t.Run("101 runes fails", func(t *testing.T) {
		result := gregoryResult()
		result.HopQueries[1] = strings.Repeat("q", 101)
		ok, err := metric.Evaluate(gregoryExample(), result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("query of 101 runes should fail")
		}
	})
}

func TestAnswerAndHopsMetric_FirstQueryMayRestateQuestion(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	// index 1 of [question, q1, q2] is exempt from the repetition check
	result.HopQueries[0] = result.Question

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("first generated query may restate the question")
	}
}

func TestAnswerAndHopsMetric_RepeatedLaterQueryFails(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	result.HopQueries[1] = result.HopQueries[0]

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("second query repeating the first should fail")
	}
}

func TestAnswerAndHopsMetric_SimilarityThresholdInclusive(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	result := gregoryResult()
	// F1 against the first query is exactly 0.8, which must fail
	result.HopQueries[0] = "alpha beta gamma delta"
	result.HopQueries[1] = "alpha beta gamma delta epsilon zeta"

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("similarity of exactly 0.8 should fail")
	}
}

func TestAnswerAndHopsMetric_MissingGoldAnswer(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	example := gregoryExample()
	example.Answer = ""

	_, err := metric.Evaluate(example, gregoryResult())
	if !errors.Is(err, domain.ErrMissingGoldAnswer) {
		t.Fatalf("expected ErrMissingGoldAnswer, got %v", err)
	}
}

func TestAnswerAndHopsMetric_NilResult(t *testing.T) {
	metric := NewAnswerAndHopsMetric()
	_, err := metric.Evaluate(gregoryExample(), nil)
	if !errors.Is(err, domain.ErrMissingRunResult) {
		t.Fatalf("expected ErrMissingRunResult, got %v", err)
	}
}

func TestGoldPassagesMetric_Accepts(t *testing.T) {
	metric := NewGoldPassagesMetric()
	ok, err := metric.Evaluate(gregoryExample(), gregoryResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected acceptance when all gold titles retrieved")
	}
}

func TestGoldPassagesMetric_SubsetNotEquality(t *testing.T) {
	metric := NewGoldPassagesMetric()
	result := gregoryResult()
	result.Context = append(result.Context, "Aberdeenshire | Aberdeenshire is a council area in Scotland.")

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("extra retrieved passages must not cause rejection")
	}
}

func TestGoldPassagesMetric_MissingGoldPassage(t *testing.T) {
	metric := NewGoldPassagesMetric()
	result := gregoryResult()
	result.Context = result.Context[:1]

	ok, err := metric.Evaluate(gregoryExample(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected rejection when a gold title is missing")
	}
}

func TestGoldPassagesMetric_TitleNormalization(t *testing.T) {
	metric := NewGoldPassagesMetric()
	example := gregoryExample()
	example.GoldTitles = []string{"david gregory (physician)", "KINNAIRDY CASTLE"}

	ok, err := metric.Evaluate(example, gregoryResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("titles should be compared after normalization")
	}
}

func TestGoldPassagesMetric_PassageWithoutDelimiter(t *testing.T) {
	metric := NewGoldPassagesMetric()
	example := gregoryExample()
	example.GoldTitles = []string{"orphan passage"}
	result := gregoryResult()
	result.Context = []string{"orphan passage"}

	ok, err := metric.Evaluate(example, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("passage without delimiter should act as its own title")
	}
}

func TestGoldPassagesMetric_MissingGoldTitles(t *testing.T) {
	metric := NewGoldPassagesMetric()
	example := gregoryExample()
	example.GoldTitles = nil

	_, err := metric.Evaluate(example, gregoryResult())
	if !errors.Is(err, domain.ErrMissingGoldTitles) {
		t.Fatalf("expected ErrMissingGoldTitles, got %v", err)
	}
}

func TestGoldPassagesMetric_NilResult(t *testing.T) {
	metric := NewGoldPassagesMetric()
	_, err := metric.Evaluate(gregoryExample(), nil)
	if !errors.Is(err, domain.ErrMissingRunResult) {
		t.Fatalf("expected ErrMissingRunResult, got %v", err)
	}
}
