package domain

import "errors"

// Common domain errors
var (
	// Pipeline errors
	ErrEmptyQuestion          = errors.New("question cannot be empty")
	ErrInvalidHopCount        = errors.New("hop count must not be negative")
	ErrInvalidPassageCount    = errors.New("passages per hop must be positive")
	ErrGeneratorCountMismatch = errors.New("query generator count does not match hop count")

	// Collaborator errors
	ErrLLMUnavailable       = errors.New("LLM service unavailable")
	ErrRetrieverUnavailable = errors.New("retrieval service unavailable")
	ErrEmbeddingsFailed     = errors.New("failed to generate embeddings")
	ErrMalformedOutput      = errors.New("collaborator returned malformed output")

	// Metric errors
	ErrMissingGoldAnswer = errors.New("example has no gold answer")
	ErrMissingGoldTitles = errors.New("example has no gold supporting titles")
	ErrMissingRunResult  = errors.New("run result is required")

	// Dataset errors
	ErrEmptyDataset   = errors.New("dataset contains no examples")
	ErrInvalidExample = errors.New("example is missing required fields")

	// Validation errors
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// DomainError wraps a domain error with additional context
type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

func NewDomainErrorWithCode(err error, message, code string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
