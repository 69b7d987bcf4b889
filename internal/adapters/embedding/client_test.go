package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingFixture(vectors ...[]float32) EmbeddingResponse {
	resp := EmbeddingResponse{Object: "list", Model: "test-model"}
	for i, v := range vectors {
		resp.Data = append(resp.Data, struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}{Object: "embedding", Embedding: v, Index: i})
	}
	return resp
}

func TestNewClient_URLNormalization(t *testing.T) {
	tests := []struct {
		name        string
		inputURL    string
		expectedURL string
	}{
		{"URL with /v1 suffix", "http://localhost:11434/v1", "http://localhost:11434"},
		{"URL without /v1 suffix", "http://localhost:11434", "http://localhost:11434"},
		{"URL with trailing slash", "http://localhost:11434/", "http://localhost:11434"},
		{"URL with /v1/ suffix", "http://localhost:11434/v1/", "http://localhost:11434"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.inputURL, "", "test-model", 1024)
			if client.baseURL != tt.expectedURL {
				t.Errorf("expected baseURL to be %s, got %s", tt.expectedURL, client.baseURL)
			}
		})
	}
}

func TestEmbed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header")
		}
		json.NewEncoder(w).Encode(embeddingFixture([]float32{0.1, 0.2, 0.3}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 3)
	result, err := client.Embed(context.Background(), "test text")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(result.Embedding))
	}
	if result.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", result.Model)
	}
}

func TestEmbed_NoEmbeddingReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingFixture())
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	if _, err := client.Embed(context.Background(), "test text"); err == nil {
		t.Fatal("expected error for no embedding returned")
	}
}

func TestEmbedBatch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingFixture([]float32{0.1, 0.2, 0.3}, []float32{0.4, 0.5, 0.6}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	results, err := client.EmbedBatch(context.Background(), []string{"text1", "text2"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Embedding[0] != 0.4 {
		t.Errorf("results out of order")
	}
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	client := NewClient("http://localhost:11434", "", "test-model", 3)
	results, err := client.EmbedBatch(context.Background(), []string{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestEmbedBatch_SingleTextSentAsString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EmbeddingRequest
		json.NewDecoder(r.Body).Decode(&req)
		if _, ok := req.Input.([]interface{}); ok {
			t.Error("expected Input to be string for single text")
		}
		json.NewEncoder(w).Encode(embeddingFixture([]float32{0.1, 0.2, 0.3}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	if _, err := client.EmbedBatch(context.Background(), []string{"single text"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmbedBatch_DimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingFixture([]float32{0.1, 0.2}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	if _, err := client.EmbedBatch(context.Background(), []string{"test"}); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestEmbedBatch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	if _, err := client.EmbedBatch(context.Background(), []string{"test"}); err == nil {
		t.Fatal("expected error for HTTP error")
	}
}

func TestEmbedBatch_CircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", 3)
	for i := 0; i < 6; i++ {
		client.EmbedBatch(context.Background(), []string{"test"})
	}

	if _, err := client.EmbedBatch(context.Background(), []string{"test"}); err == nil {
		t.Fatal("expected circuit breaker to be open")
	}
}
