package models

import "time"

// Passage is a retrievable unit of evidence text. The wire form used by
// the pipeline is "<title> | <body>".
type Passage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Embedding []float32 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Formatted renders the passage in the "<title> | <body>" form the
// orchestrator and metrics operate on.
func (p *Passage) Formatted() string {
	return p.Title + " | " + p.Body
}
