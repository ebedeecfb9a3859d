// Package auth manages the two identities a Showcase client can present:
// a bearer credential issued when a parent account is created, and an
// anonymous browser fingerprint used to attribute unauthenticated reactions.
package auth

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/showcase/showcase-client/store"
)

// Storage keys, shared with the original web client so state written by one
// surface is readable by the other.
const (
	tokenKey  = "jwt_token"
	parentKey = "parent_info"
)

// Profile is the parent account summary cached alongside the credential. It
// lets a returning user skip re-entering contact details.
type Profile struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// TokenStore owns the credential and its companion profile. A profile must
// never be trusted for a write without both IsAuthenticated() and
// !IsExpired() holding.
type TokenStore struct {
	st store.Store
}

// NewTokenStore wraps the given key-value store.
func NewTokenStore(st store.Store) *TokenStore {
	return &TokenStore{st: st}
}

// SetCredential persists the bearer token. Empty input is a no-op so a
// missing jwt_token field in a response never clobbers a stored credential.
func (t *TokenStore) SetCredential(token string) {
	if token == "" {
		return
	}
	if err := t.st.Set(tokenKey, token); err != nil {
		log.Warn().Err(err).Msg("failed to persist credential")
	}
}

// Credential returns the stored bearer token, or "" when absent.
func (t *TokenStore) Credential() string {
	v, _ := t.st.Get(tokenKey)
	return v
}

// ClearCredential removes the credential and profile together. Callers treat
// the pair as one unit; leaving an orphaned profile behind would let stale
// contact details masquerade as an authenticated identity.
func (t *TokenStore) ClearCredential() {
	_ = t.st.Remove(tokenKey)
	_ = t.st.Remove(parentKey)
}

// IsAuthenticated reports whether a credential is present. It does not check
// expiry; use IsExpired for that.
func (t *TokenStore) IsAuthenticated() bool {
	return t.Credential() != ""
}

// IsExpired reports whether the given token (or the stored one when token is
// "") has an exp claim in the past. The payload is decoded without signature
// verification — this client only ever reads the expiry claim, authenticity
// is the backend's problem. Fail-closed: an absent, undecodable, or
// claim-less token is expired.
func (t *TokenStore) IsExpired(token string) bool {
	if token == "" {
		token = t.Credential()
	}
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Debug().Err(err).Msg("failed to decode token")
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Unix() < time.Now().Unix()
}

// SetProfile persists the parent summary next to the credential.
func (t *TokenStore) SetProfile(p Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := t.st.Set(parentKey, string(raw)); err != nil {
		log.Warn().Err(err).Msg("failed to persist profile")
	}
}

// Profile returns the cached parent summary, if any.
func (t *TokenStore) Profile() (Profile, bool) {
	raw, ok := t.st.Get(parentKey)
	if !ok {
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, false
	}
	return p, true
}
