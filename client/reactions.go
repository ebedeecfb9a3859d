package client

import (
	"context"
)

// Reaction operations - all methods operate directly on Client

// The fixed set of reaction kinds the backend accepts.
const (
	ReactionLove      = "love"
	ReactionWow       = "wow"
	ReactionFunny     = "funny"
	ReactionInspiring = "inspiring"
	ReactionCool      = "cool"
)

var reactionEmojis = map[string]string{
	ReactionLove:      "❤️",
	ReactionWow:       "😮",
	ReactionFunny:     "😂",
	ReactionInspiring: "🤩",
	ReactionCool:      "🔥",
}

// EmojiFor returns the display emoji for a reaction kind, or "" for an
// unknown kind.
func EmojiFor(kind string) string { return reactionEmojis[kind] }

// CreateReactionRequest is the payload for submitting a reaction. The
// fingerprint header attributes it; no credential is needed.
type CreateReactionRequest struct {
	ProjectID int    `json:"project_id"`
	Kind      string `json:"reaction_type"`
}

// CreateReaction records a reaction on a project. Reacting again with a
// different kind moves the actor's reaction rather than stacking a second
// one; there is no un-react.
func (c *Client) CreateReaction(ctx context.Context, req CreateReactionRequest) (*Reaction, error) {
	if err := ValidateReactionKind(req.Kind); err != nil {
		return nil, err
	}
	var r Reaction
	if err := c.post(ctx, "/reactions/", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReaction removes a reaction by UUID. Accepted with either the
// original fingerprint or a bearer credential.
func (c *Client) DeleteReaction(ctx context.Context, reactionUUID string) error {
	if err := ValidateUUID(reactionUUID, "reaction uuid"); err != nil {
		return err
	}
	return c.delete(ctx, "/reactions/"+reactionUUID+"/")
}
