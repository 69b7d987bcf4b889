package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
)

// SliceDataset is an in-memory, ordered dataset of benchmark examples.
// It is not safe for concurrent iteration; the evaluation harness drains
// it from a single goroutine.
type SliceDataset struct {
	examples []models.Example
	index    int
}

func NewSliceDataset(examples []models.Example) *SliceDataset {
	return &SliceDataset{examples: examples}
}

func (d *SliceDataset) Next() (models.Example, bool) {
	if d.index >= len(d.examples) {
		return models.Example{}, false
	}
	ex := d.examples[d.index]
	d.index++
	return ex, true
}

func (d *SliceDataset) Reset() {
	d.index = 0
}

func (d *SliceDataset) Len() int {
	return len(d.examples)
}

// Examples returns the backing slice
func (d *SliceDataset) Examples() []models.Example {
	return d.examples
}

// Split partitions the dataset into a head of n examples and the rest.
func (d *SliceDataset) Split(n int) (*SliceDataset, *SliceDataset) {
	if n < 0 {
		n = 0
	}
	if n > len(d.examples) {
		n = len(d.examples)
	}
	return NewSliceDataset(d.examples[:n]), NewSliceDataset(d.examples[n:])
}

// LoadFile reads a JSON benchmark file: an array of objects with
// "question", "answer" and optional "gold_titles" fields.
func LoadFile(path string) (*SliceDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates raw JSON benchmark data.
func Parse(data []byte) (*SliceDataset, error) {
	var examples []models.Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	if len(examples) == 0 {
		return nil, domain.NewDomainError(domain.ErrEmptyDataset, "dataset contains no examples")
	}

	for i := range examples {
		if strings.TrimSpace(examples[i].Question) == "" {
			return nil, domain.NewDomainError(domain.ErrInvalidExample, fmt.Sprintf("example %d has an empty question", i))
		}
		if examples[i].ID == "" {
			examples[i].ID = fmt.Sprintf("example_%d", i)
		}
	}

	return NewSliceDataset(examples), nil
}
