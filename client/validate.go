package client

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Validation mirrors the backend's rules so obviously bad input is rejected
// before a round trip. Message wording matches the backend's own validation
// phrases, which keeps the classifier's phrase table applicable either way.

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// E.164-ish: optional +, 7-15 digits.
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// validationError wraps a local pre-flight rejection in the same typed error
// a server-side 400 produces, so callers switch on Kind without caring where
// the check ran. The phrase table supplies the friendly message.
func validationError(message string) *APIError {
	friendly := message
	for _, p := range validationPhrases {
		if strings.Contains(message, p.fragment) {
			friendly = p.friendly
			break
		}
	}
	return &APIError{Kind: KindValidation, Message: message, UserMessage: friendly}
}

// ReactionKinds is the fixed set of supported reaction types.
var ReactionKinds = []string{ReactionLove, ReactionWow, ReactionFunny, ReactionInspiring, ReactionCool}

// ValidateReactionKind checks kind against the fixed set.
func ValidateReactionKind(kind string) error {
	for _, k := range ReactionKinds {
		if kind == k {
			return nil
		}
	}
	return validationError("reaction_type must be one of " + strings.Join(ReactionKinds, ", "))
}

// ValidateUUID validates that a string is a valid UUID format.
// Used for reaction and parent identifiers.
func ValidateUUID(id, fieldName string) error {
	if id == "" {
		return validationError(fieldName + " is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return validationError(fieldName + " must be a valid UUID format")
	}
	return nil
}

// ValidateComment checks a comment submission: project, username, and text
// are required; text is capped at 500 characters.
func ValidateComment(req AddCommentRequest) error {
	if req.ProjectID <= 0 {
		return validationError("project_id is required")
	}
	if strings.TrimSpace(req.Username) == "" {
		return validationError("username is required")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return validationError("text is required")
	}
	if len(text) < 2 {
		return validationError("text must be at least 2 characters")
	}
	if len(text) > 500 {
		return validationError("text exceeds maximum length of 500 characters")
	}
	return nil
}

// ValidateParent checks an account submission: name plus exactly one of
// email or phone number.
func ValidateParent(req CreateParentRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return validationError("name is required")
	}
	if req.Email == "" && req.PhoneNumber == "" {
		return validationError("Either email or phone_number is required")
	}
	if req.Email != "" && req.PhoneNumber != "" {
		return validationError("provide either email or phone_number, not both")
	}
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return validationError("Invalid email format")
	}
	if req.PhoneNumber != "" && !phoneRegex.MatchString(req.PhoneNumber) {
		return validationError("Invalid phone number format")
	}
	return nil
}
