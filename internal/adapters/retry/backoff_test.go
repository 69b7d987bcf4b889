package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"
)

func testPolicy() Policy {
	return Policy{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     100 * time.Millisecond,
		MaxRetries:      3,
		Multiplier:      2.0,
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"connection refused", &net.OpError{Err: syscall.ECONNREFUSED}, true},
		{"connection reset", &net.OpError{Err: syscall.ECONNRESET}, true},
		{"broken pipe", &net.OpError{Err: syscall.EPIPE}, true},
		{"generic error", errors.New("some error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err); got != tt.expected {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   bool
	}{
		{"200 OK", http.StatusOK, false},
		{"400 Bad Request", http.StatusBadRequest, false},
		{"404 Not Found", http.StatusNotFound, false},
		{"408 Request Timeout", http.StatusRequestTimeout, true},
		{"429 Too Many Requests", http.StatusTooManyRequests, true},
		{"500 Internal Server Error", http.StatusInternalServerError, true},
		{"502 Bad Gateway", http.StatusBadGateway, true},
		{"503 Service Unavailable", http.StatusServiceUnavailable, true},
		{"504 Gateway Timeout", http.StatusGatewayTimeout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableHTTPStatus(tt.statusCode); got != tt.expected {
				t.Errorf("IsRetryableHTTPStatus(%d) = %v, want %v", tt.statusCode, got, tt.expected)
			}
		})
	}
}

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), testPolicy(), func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("Do() error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("Do() attempts = %d, want 1", attempts)
	}
}

func TestDo_RetryableErrorThenSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), testPolicy(), func() error {
		attempts++
		if attempts < 3 {
			return &net.OpError{Err: syscall.ECONNREFUSED}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do() error = %v, want nil", err)
	}
	if attempts != 3 {
		t.Errorf("Do() attempts = %d, want 3", attempts)
	}
}

func TestDo_NonRetryableError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), testPolicy(), func() error {
		attempts++
		return errors.New("non-retryable error")
	})

	if err == nil {
		t.Error("Do() error = nil, want non-nil")
	}
	if attempts != 1 {
		t.Errorf("Do() attempts = %d, want 1 (should not retry non-retryable errors)", attempts)
	}
}

func TestDo_MaxRetriesExceeded(t *testing.T) {
	p := testPolicy()
	attempts := 0
	err := Do(context.Background(), p, func() error {
		attempts++
		return &net.OpError{Err: syscall.ECONNREFUSED}
	})

	if err == nil {
		t.Error("Do() error = nil, want non-nil")
	}
	// initial attempt plus MaxRetries retries
	if want := p.MaxRetries + 1; attempts != want {
		t.Errorf("Do() attempts = %d, want %d", attempts, want)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	p := Policy{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxRetries:      5,
		Multiplier:      2.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	err := Do(ctx, p, func() error {
		attempts++
		return &net.OpError{Err: syscall.ECONNREFUSED}
	})

	if err != context.Canceled {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if attempts < 1 {
		t.Errorf("Do() attempts = %d, want at least 1", attempts)
	}
}

func TestDoHTTP_Success(t *testing.T) {
	attempts := 0
	err := DoHTTP(context.Background(), testPolicy(), func() (int, error) {
		attempts++
		return http.StatusOK, nil
	})

	if err != nil {
		t.Errorf("DoHTTP() error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("DoHTTP() attempts = %d, want 1", attempts)
	}
}

func TestDoHTTP_RetryableStatus(t *testing.T) {
	attempts := 0
	err := DoHTTP(context.Background(), testPolicy(), func() (int, error) {
		attempts++
		if attempts < 3 {
			return http.StatusServiceUnavailable, nil
		}
		return http.StatusOK, nil
	})

	if err != nil {
		t.Errorf("DoHTTP() error = %v, want nil", err)
	}
	if attempts != 3 {
		t.Errorf("DoHTTP() attempts = %d, want 3", attempts)
	}
}

func TestDoHTTP_NonRetryableStatus(t *testing.T) {
	attempts := 0
	err := DoHTTP(context.Background(), testPolicy(), func() (int, error) {
		attempts++
		return http.StatusBadRequest, nil
	})

	if err == nil {
		t.Error("DoHTTP() error = nil, want non-nil")
	}
	if attempts != 1 {
		t.Errorf("DoHTTP() attempts = %d, want 1 (should not retry 4xx errors)", attempts)
	}
}

func TestDoHTTP_TransportErrorThenSuccess(t *testing.T) {
	attempts := 0
	err := DoHTTP(context.Background(), testPolicy(), func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, &net.OpError{Err: syscall.ECONNREFUSED}
		}
		return http.StatusOK, nil
	})

	if err != nil {
		t.Errorf("DoHTTP() error = %v, want nil", err)
	}
	if attempts != 2 {
		t.Errorf("DoHTTP() attempts = %d, want 2", attempts)
	}
}

func TestDoHTTP_MaxRetriesWithStatus(t *testing.T) {
	p := testPolicy()
	attempts := 0
	err := DoHTTP(context.Background(), p, func() (int, error) {
		attempts++
		return http.StatusInternalServerError, nil
	})

	if err == nil {
		t.Error("DoHTTP() error = nil, want non-nil")
	}
	if want := p.MaxRetries + 1; attempts != want {
		t.Errorf("DoHTTP() attempts = %d, want %d", attempts, want)
	}
}
