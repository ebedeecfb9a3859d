package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the closed taxonomy of classified API failures. Every failed call
// maps to exactly one kind; callers switch on it rather than on status codes
// or message strings.
type Kind string

const (
	KindNetwork    Kind = "NETWORK_ERROR"
	KindValidation Kind = "VALIDATION_ERROR"
	KindAuth       Kind = "AUTH_ERROR"
	KindPermission Kind = "PERMISSION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindRateLimit  Kind = "RATE_LIMIT"
	KindServer     Kind = "SERVER_ERROR"
	KindUnknown    Kind = "UNKNOWN_ERROR"
)

// APIError is the only error type the client surfaces for failed calls.
// It is constructed once by the classifier and never mutated afterwards.
type APIError struct {
	// Status is the HTTP status code, or 0 for a transport failure.
	Status int
	Kind   Kind
	// Message is the technical description, meant for logs.
	Message string
	// UserMessage is safe to render to an end user.
	UserMessage string
	// FieldErrors maps field name to message for validation failures.
	FieldErrors map[string]string
	// Details carries the raw response body for diagnostics.
	Details json.RawMessage
	// Retryable marks kinds the retry helper may re-attempt.
	Retryable bool
	// RequiresAuth marks failures that should route the user to signup.
	RequiresAuth bool
	// RetryAfter is the server's backoff hint on rate limiting, if given.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
}

// CanRetry reports whether the retry helper may re-attempt this failure.
func (e *APIError) CanRetry() bool { return e.Retryable }

// IsAuthError reports whether the failure requires (re-)authentication.
func (e *APIError) IsAuthError() bool { return e.Kind == KindAuth }

// IsValidationError reports whether the failure is a rejected input.
func (e *APIError) IsValidationError() bool { return e.Kind == KindValidation }

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// validationPhrases maps backend validation fragments to friendly messages.
// Matched in order; first hit wins.
var validationPhrases = []struct {
	fragment string
	friendly string
}{
	// Reactions
	{"reaction_type must be one of", "Please select a valid reaction type"},
	{"X-Browser-Fingerprint header is required", "Unable to process your reaction. Please refresh the page."},
	// Parents
	{"Either email or phone_number is required", "Please provide either an email or phone number"},
	{"Invalid email format", "Please enter a valid email address"},
	{"Invalid phone number format", "Please enter a valid phone number with country code"},
	// Comments
	{"Authentication required", "Please sign up to add comments"},
	{"username is required", "Please enter a username"},
	{"text is required", "Comment text cannot be empty"},
	{"text must be at least", "Comment is too short"},
	{"text exceeds maximum length", "Comment is too long"},
	// General
	{"This field is required", "Please fill in all required fields"},
	{"Invalid input", "Please check your input and try again"},
}

// classifyTransport produces the typed error for a call that received no
// HTTP response at all.
func classifyTransport(err error) *APIError {
	return &APIError{
		Status:      0,
		Kind:        KindNetwork,
		Message:     err.Error(),
		UserMessage: "Connection failed. Please check your internet and try again.",
		Retryable:   true,
	}
}

// classifyResponse maps an HTTP failure onto the taxonomy. path is the
// request path relative to the base URL; it drives the 404 resource naming.
// The function is pure — the 401 credential-clearing side effect is applied
// by the caller.
func classifyResponse(status int, body []byte, path, retryAfter string) *APIError {
	e := &APIError{Status: status, Details: json.RawMessage(body)}

	switch status {
	case 400:
		e.Kind = KindValidation
		msg, fields := parseValidationBody(body)
		if msg == "" {
			msg = "Please check your input and try again."
		}
		e.Message = msg
		e.UserMessage = msg
		e.FieldErrors = fields

	case 401:
		e.Kind = KindAuth
		e.Message = "Authentication required. Please sign up or log in."
		e.UserMessage = "Please sign up to continue"
		e.RequiresAuth = true

	case 403:
		e.Kind = KindPermission
		e.Message = "You don't have permission to perform this action."
		e.UserMessage = "Access denied"

	case 404:
		e.Kind = KindNotFound
		resource := resourceFromPath(path)
		e.Message = fmt.Sprintf("The %s you're looking for doesn't exist or has been removed.", resource)
		e.UserMessage = strings.ToUpper(resource[:1]) + resource[1:] + " not found"

	case 409:
		e.Kind = KindConflict
		e.Message = detailFromBody(body, "This action conflicts with existing data.")
		e.UserMessage = "This action cannot be completed"

	case 429:
		e.Kind = KindRateLimit
		e.Message = "Too many requests. Please wait a moment and try again."
		e.UserMessage = "Please slow down and try again"
		e.Retryable = true
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		}

	case 500, 502, 503, 504:
		e.Kind = KindServer
		e.Message = "Something went wrong on our end. Please try again later."
		e.UserMessage = "Server error. Please try again later."
		e.Retryable = true

	default:
		e.Kind = KindUnknown
		e.Message = detailFromBody(body, "An unexpected error occurred. Please try again.")
		e.UserMessage = "Something went wrong"
	}
	return e
}

// resourceFromPath names the missing resource by inspecting the request
// path (relative to the base URL). "account" is the user-facing name for a
// parent record.
func resourceFromPath(path string) string {
	switch {
	case strings.Contains(path, "project"):
		return "project"
	case strings.Contains(path, "comment"):
		return "comment"
	case strings.Contains(path, "parent"):
		return "account"
	default:
		return "resource"
	}
}

// parseValidationBody extracts a message and field-level errors from a 400
// body. A body with a "detail" string is matched against the phrase table;
// otherwise each field's first error is collected.
func parseValidationBody(body []byte) (string, map[string]string) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return "", nil
	}

	if detail, ok := payload["detail"].(string); ok {
		for _, p := range validationPhrases {
			if strings.Contains(detail, p.fragment) {
				return p.friendly, nil
			}
		}
		return detail, nil
	}

	fields := make(map[string]string, len(payload))
	for field, v := range payload {
		switch fv := v.(type) {
		case string:
			fields[field] = fv
		case []any:
			if len(fv) > 0 {
				if s, ok := fv[0].(string); ok {
					fields[field] = s
				}
			}
		}
	}
	if len(fields) == 0 {
		return "", nil
	}

	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+fields[f])
	}
	return strings.Join(parts, ", "), fields
}

func detailFromBody(body []byte, fallback string) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}
