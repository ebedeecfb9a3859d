package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/showcase/showcase-client/auth"
)

// Parent account operations - all methods operate directly on Client

// CreateParentRequest is the signup payload: a display name plus exactly one
// of email or phone number.
type CreateParentRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// CreateParent creates (or re-resolves) a parent account. When the response
// carries a credential it is stored together with the profile summary, so
// subsequent authenticated calls need no further setup.
func (c *Client) CreateParent(ctx context.Context, req CreateParentRequest) (*Parent, error) {
	if err := ValidateParent(req); err != nil {
		return nil, err
	}
	var p Parent
	if err := c.post(ctx, "/parents/", req, &p); err != nil {
		return nil, err
	}
	if p.JWTToken != "" && c.creds != nil {
		c.creds.SetCredential(p.JWTToken)
		c.creds.SetProfile(auth.Profile{
			UUID:        p.UUID,
			Name:        p.Name,
			Email:       p.Email,
			PhoneNumber: p.PhoneNumber,
		})
	}
	return &p, nil
}

// GetParent fetches a parent profile. Requires a bearer credential.
func (c *Client) GetParent(ctx context.Context, parentUUID string) (*Parent, error) {
	if err := ValidateUUID(parentUUID, "parent uuid"); err != nil {
		return nil, err
	}
	var p Parent
	if err := c.get(ctx, "/parents/"+parentUUID+"/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Reauthenticate silently re-runs account creation with the stored profile's
// identity. Used when the token has expired but contact details are cached:
// on success a fresh credential is stored and the user never sees a prompt.
// Failure is reported, not raised — the caller falls back to asking the user.
func (c *Client) Reauthenticate(ctx context.Context) bool {
	if c.creds == nil {
		return false
	}
	profile, ok := c.creds.Profile()
	if !ok || profile.Name == "" || (profile.Email == "" && profile.PhoneNumber == "") {
		return false
	}

	req := CreateParentRequest{Name: profile.Name}
	if profile.Email != "" {
		req.Email = profile.Email
	} else {
		req.PhoneNumber = profile.PhoneNumber
	}

	p, err := c.CreateParent(ctx, req)
	if err != nil {
		log.Debug().Err(err).Msg("silent re-authentication failed")
		return false
	}
	return p.JWTToken != ""
}
