package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/showcase/showcase-client/store"
)

// makeToken builds an unsigned JWT with the given claims. The store never
// verifies signatures, so a bogus signature segment is fine.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	raw, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	sig := base64.RawURLEncoding.EncodeToString([]byte("sig"))
	return strings.Join([]string{header, payload, sig}, ".")
}

func TestTokenStore_CredentialLifecycle(t *testing.T) {
	ts := NewTokenStore(store.NewMemoryStore())

	if ts.IsAuthenticated() {
		t.Fatal("fresh store should not be authenticated")
	}
	ts.SetCredential("")
	if ts.Credential() != "" {
		t.Fatal("empty token must be a no-op")
	}

	ts.SetCredential("tok123")
	if !ts.IsAuthenticated() || ts.Credential() != "tok123" {
		t.Fatalf("credential not stored: %q", ts.Credential())
	}

	ts.SetProfile(Profile{UUID: "u1", Name: "Ada", Email: "ada@example.com"})
	if p, ok := ts.Profile(); !ok || p.Name != "Ada" {
		t.Fatalf("profile = %+v, %v", p, ok)
	}

	ts.ClearCredential()
	if ts.IsAuthenticated() {
		t.Fatal("credential survived ClearCredential")
	}
	if _, ok := ts.Profile(); ok {
		t.Fatal("profile must be cleared together with the credential")
	}
}

func TestTokenStore_IsExpired(t *testing.T) {
	ts := NewTokenStore(store.NewMemoryStore())
	now := time.Now().Unix()

	cases := []struct {
		name    string
		token   string
		expired bool
	}{
		{"future exp", makeToken(t, map[string]any{"exp": now + 3600}), false},
		{"past exp", makeToken(t, map[string]any{"exp": now - 1}), true},
		{"no exp claim", makeToken(t, map[string]any{"sub": "u1"}), true},
		{"garbage", "not.a.jwt", true},
		{"empty with no stored token", "", true},
	}
	for _, tc := range cases {
		if got := ts.IsExpired(tc.token); got != tc.expired {
			t.Errorf("%s: IsExpired = %v, want %v", tc.name, got, tc.expired)
		}
	}

	// Empty argument falls back to the stored credential.
	ts.SetCredential(makeToken(t, map[string]any{"exp": now + 3600}))
	if ts.IsExpired("") {
		t.Fatal("stored future token reported expired")
	}
}

func TestFingerprint_StableAndPersisted(t *testing.T) {
	st := store.NewMemoryStore()
	p := NewFingerprintProvider(st)

	fp := p.Fingerprint()
	if !strings.HasPrefix(fp, "fp_") {
		t.Fatalf("fingerprint %q missing fp_ prefix", fp)
	}
	if p.Fingerprint() != fp {
		t.Fatal("fingerprint changed between calls")
	}

	// A second provider over the same store reads the persisted value.
	if got := NewFingerprintProvider(st).Fingerprint(); got != fp {
		t.Fatalf("second provider = %q, want %q", got, fp)
	}
	if v, ok := st.Get("browser_fingerprint"); !ok || v != fp {
		t.Fatalf("persisted = %q, %v", v, ok)
	}
}

func TestFingerprint_StorageFailureDegrades(t *testing.T) {
	p := NewFingerprintProvider(failingStore{})
	fp1 := p.Fingerprint()
	fp2 := p.Fingerprint()
	if fp1 == "" || fp2 == "" {
		t.Fatal("fingerprint must still be produced without storage")
	}
	// Generation is deterministic per machine, so even unpersisted values agree.
	if fp1 != fp2 {
		t.Fatalf("regenerated fingerprints diverged: %q vs %q", fp1, fp2)
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return fmt.Errorf("store unavailable") }
func (failingStore) Remove(string) error       { return fmt.Errorf("store unavailable") }
