package pipeline

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
)

// Signature wraps dspy-go's signature with pipeline-specific metadata
type Signature struct {
	core.Signature
	Name        string
	Description string
}

// MustParseSignature creates a signature from a string or panics
func MustParseSignature(sig string) Signature {
	s, err := ParseSignature(sig)
	if err != nil {
		panic(fmt.Sprintf("failed to parse signature: %v", err))
	}
	return s
}

// ParseSignature creates a signature from a string like "input1, input2 -> output1"
func ParseSignature(sig string) (Signature, error) {
	parts := strings.Split(sig, "->")
	if len(parts) != 2 {
		return Signature{}, fmt.Errorf("invalid signature format: %s", sig)
	}

	inputFields := parseFields(strings.TrimSpace(parts[0]))
	outputFields := parseFields(strings.TrimSpace(parts[1]))

	inputs := make([]core.InputField, len(inputFields))
	for i, f := range inputFields {
		inputs[i] = core.InputField{Field: f}
	}

	outputs := make([]core.OutputField, len(outputFields))
	for i, f := range outputFields {
		outputs[i] = core.OutputField{Field: f}
	}

	coreSig := core.NewSignature(inputs, outputs)

	return Signature{
		Signature: coreSig,
		Name:      generateName(sig),
	}, nil
}

func parseFields(fieldStr string) []core.Field {
	if fieldStr == "" {
		return nil
	}

	parts := strings.Split(fieldStr, ",")
	fields := make([]core.Field, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var name string
		if strings.Contains(part, ":") {
			fieldParts := strings.SplitN(part, ":", 2)
			name = strings.TrimSpace(fieldParts[0])
		} else {
			name = part
		}

		fields = append(fields, core.NewField(name))
	}

	return fields
}

func generateName(sig string) string {
	name := strings.ReplaceAll(sig, "->", "_to_")
	name = strings.ReplaceAll(name, ",", "_")
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	return name
}

// Predefined signatures for the two pipeline stages
var (
	// QueryGeneration produces the next search query from the accumulated
	// context and the original question.
	QueryGeneration = MustParseSignature("context, question -> query")

	// AnswerGeneration produces the final answer from the accumulated
	// context and the original question.
	AnswerGeneration = MustParseSignature("context, question -> answer")
)

func init() {
	QueryGeneration.Description = "Given the passages gathered so far and the question, write the next search query."
	AnswerGeneration.Description = "Given the gathered passages and the question, answer with a short factoid."
}
