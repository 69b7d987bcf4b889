package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/longregen/multihop/internal/adapters/circuitbreaker"
	"github.com/longregen/multihop/internal/adapters/metrics"
	"github.com/longregen/multihop/internal/adapters/retry"
	"github.com/longregen/multihop/internal/domain"
)

// HTTPRetriever queries a passage search service over HTTP. The service
// returns passages already formatted as "<title> | <body>".
type HTTPRetriever struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	retryPolicy retry.Policy
	breaker     *circuitbreaker.CircuitBreaker
}

func NewHTTPRetriever(baseURL, apiKey string) *HTTPRetriever {
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &HTTPRetriever{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: retry.DefaultPolicy(),
		breaker:     circuitbreaker.New(5, 30*time.Second),
	}
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type searchResponse struct {
	Passages []string `json:"passages"`
}

// Retrieve returns up to k passages for the query, best match first.
func (r *HTTPRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if k < 1 {
		return nil, domain.NewDomainError(domain.ErrInvalidPassageCount, fmt.Sprintf("k must be positive, got %d", k))
	}

	body, err := json.Marshal(searchRequest{Query: query, K: k})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	var respBody []byte

	err = r.breaker.Execute(func() error {
		return retry.DoHTTP(ctx, r.retryPolicy, func() (int, error) {
			httpReq, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/api/search", bytes.NewReader(body))
			if err != nil {
				return 0, fmt.Errorf("failed to create request: %w", err)
			}

			httpReq.Header.Set("Content-Type", "application/json")
			if r.apiKey != "" {
				httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
			}

			resp, err := r.httpClient.Do(httpReq)
			if err != nil {
				return 0, fmt.Errorf("failed to send request: %w", err)
			}
			defer resp.Body.Close()

			respBody, err = io.ReadAll(resp.Body)
			if err != nil {
				return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return resp.StatusCode, fmt.Errorf("search error: %s - %s", resp.Status, string(respBody))
			}

			return resp.StatusCode, nil
		})
	})

	metrics.RetrievalDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("http", "error").Inc()
		return nil, domain.NewDomainError(domain.ErrRetrieverUnavailable, err.Error())
	}
	metrics.RetrievalRequestsTotal.WithLabelValues("http", "ok").Inc()

	var response searchResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Passages) > k {
		response.Passages = response.Passages[:k]
	}
	return response.Passages, nil
}
