package client

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyTransport(t *testing.T) {
	e := classifyTransport(errors.New("dial tcp: connection refused"))
	if e.Kind != KindNetwork {
		t.Fatalf("kind = %s, want %s", e.Kind, KindNetwork)
	}
	if e.Status != 0 {
		t.Fatalf("status = %d, want 0", e.Status)
	}
	if !e.CanRetry() {
		t.Fatal("network errors must be retry-eligible")
	}
	if e.UserMessage == "" {
		t.Fatal("network errors must carry a user-facing message")
	}
}

func TestClassifyResponse_StatusTable(t *testing.T) {
	cases := []struct {
		status    int
		kind      Kind
		retryable bool
	}{
		{400, KindValidation, false},
		{401, KindAuth, false},
		{403, KindPermission, false},
		{404, KindNotFound, false},
		{409, KindConflict, false},
		{429, KindRateLimit, true},
		{500, KindServer, true},
		{502, KindServer, true},
		{503, KindServer, true},
		{504, KindServer, true},
		{418, KindUnknown, false},
	}
	for _, tc := range cases {
		e := classifyResponse(tc.status, nil, "/", "")
		if e.Kind != tc.kind {
			t.Errorf("status %d: kind = %s, want %s", tc.status, e.Kind, tc.kind)
		}
		if e.CanRetry() != tc.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tc.status, e.CanRetry(), tc.retryable)
		}
		if e.Status != tc.status {
			t.Errorf("status %d: recorded status = %d", tc.status, e.Status)
		}
		if e.Message == "" || e.UserMessage == "" {
			t.Errorf("status %d: missing technical or user message", tc.status)
		}
	}
}

func TestClassifyResponse_AuthFlags(t *testing.T) {
	e := classifyResponse(401, nil, "/comments/add/", "")
	if !e.RequiresAuth || !e.IsAuthError() {
		t.Fatalf("401 must set RequiresAuth and IsAuthError, got %+v", e)
	}
}

func TestClassifyResponse_NotFoundNamesResource(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/comments/42/", "Comment not found"},
		{"/parents/xyz/", "Account not found"},
		{"/projects/7/", "Project not found"},
		{"/reactions/xyz/", "Resource not found"},
		{"/7/", "Resource not found"},
	}
	for _, tc := range cases {
		e := classifyResponse(404, nil, tc.path, "")
		if e.UserMessage != tc.want {
			t.Errorf("path %s: user message = %q, want %q", tc.path, e.UserMessage, tc.want)
		}
	}
}

func TestClassifyResponse_ValidationDetailPhrases(t *testing.T) {
	body := []byte(`{"detail":"reaction_type must be one of love, wow, funny, inspiring, cool"}`)
	e := classifyResponse(400, body, "/reactions/", "")
	if e.UserMessage != "Please select a valid reaction type" {
		t.Fatalf("friendly message not applied: %q", e.UserMessage)
	}
	if !e.IsValidationError() {
		t.Fatal("400 must classify as validation")
	}

	// Unknown detail falls through to the raw text.
	e = classifyResponse(400, []byte(`{"detail":"totally novel failure"}`), "/", "")
	if e.UserMessage != "totally novel failure" {
		t.Fatalf("raw detail not surfaced: %q", e.UserMessage)
	}
}

func TestClassifyResponse_ValidationFieldErrors(t *testing.T) {
	body := []byte(`{"email":["Invalid email format"],"name":"This field is required"}`)
	e := classifyResponse(400, body, "/parents/", "")
	if len(e.FieldErrors) != 2 {
		t.Fatalf("field errors = %v", e.FieldErrors)
	}
	if e.FieldErrors["email"] != "Invalid email format" {
		t.Fatalf("email field error = %q", e.FieldErrors["email"])
	}
	if e.FieldErrors["name"] != "This field is required" {
		t.Fatalf("name field error = %q", e.FieldErrors["name"])
	}
	// Fields are joined deterministically, sorted by name.
	want := "email: Invalid email format, name: This field is required"
	if e.Message != want {
		t.Fatalf("message = %q, want %q", e.Message, want)
	}
}

func TestClassifyResponse_RetryAfterHint(t *testing.T) {
	e := classifyResponse(429, nil, "/reactions/", "7")
	if e.RetryAfter != 7*time.Second {
		t.Fatalf("retry-after = %v, want 7s", e.RetryAfter)
	}
	e = classifyResponse(429, nil, "/reactions/", "")
	if e.RetryAfter != 0 {
		t.Fatalf("missing header must leave RetryAfter zero, got %v", e.RetryAfter)
	}
}

func TestClassifyResponse_ConflictDetail(t *testing.T) {
	e := classifyResponse(409, []byte(`{"detail":"already reacted"}`), "/reactions/", "")
	if e.Message != "already reacted" {
		t.Fatalf("conflict detail not used: %q", e.Message)
	}
}

func TestAsAPIError(t *testing.T) {
	var err error = &APIError{Kind: KindServer, Status: 500}
	if e, ok := AsAPIError(err); !ok || e.Kind != KindServer {
		t.Fatalf("AsAPIError failed on direct error")
	}
	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatal("plain error must not convert")
	}
}
