package models

// Example is a benchmark record: a question with its gold answer and the
// titles of the passages that support it.
type Example struct {
	ID         string   `json:"id,omitempty"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	GoldTitles []string `json:"gold_titles,omitempty"`
}

// HasGoldAnswer reports whether the example carries a gold answer label.
func (e *Example) HasGoldAnswer() bool {
	return e.Answer != ""
}

// HasGoldTitles reports whether the example carries gold supporting titles.
func (e *Example) HasGoldTitles() bool {
	return len(e.GoldTitles) > 0
}
