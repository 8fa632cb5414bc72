package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   bool
	}{
		{name: "transport failure", status: 0, err: errors.New("connection refused"), want: true},
		{name: "server error", status: 500, err: errors.New("http error: status 500"), want: true},
		{name: "bad gateway", status: 502, err: errors.New("http error: status 502"), want: true},
		{name: "client error", status: 400, err: errors.New("http error: status 400"), want: false},
		{name: "not found", status: 404, err: errors.New("http error: status 404"), want: false},
		{name: "success", status: 200, err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryable(tc.status, tc.err); got != tc.want {
				t.Fatalf("retryable(%d, %v) = %t, want %t", tc.status, tc.err, got, tc.want)
			}
		})
	}
}

// TestExecute_NoBackoffSingleAttempt verifies that without a backoff configuration a
// failing request is attempted exactly once.
func TestExecute_NoBackoffSingleAttempt(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		Execute()

	if err == nil {
		t.Fatal("Execute() error = nil, want http error")
	}
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 without backoff", got)
	}
}

// TestExecute_BackoffRetriesServerErrors verifies a configured backoff retries 5xx
// responses until success.
func TestExecute_BackoffRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	successResp := &struct {
		OK bool `json:"ok"`
	}{}

	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithSuccessResp(successResp).
		WithBackoff(&BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}).
		Execute()

	if err != nil {
		t.Fatalf("Execute() error = %v, want nil after retries", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if !successResp.OK {
		t.Error("success response not unmarshalled")
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

// TestExecute_BackoffSkipsClientErrors verifies 4xx responses are never retried even
// with a backoff configured.
func TestExecute_BackoffSkipsClientErrors(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithBackoff(&BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond}).
		Execute()

	if err == nil {
		t.Fatal("Execute() error = nil, want http error")
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 for a client error", got)
	}
}
