package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_CreateReaction(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reactions/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Browser-Fingerprint") == "" {
			t.Error("reaction sent without fingerprint header")
		}
		var req CreateReactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Kind != ReactionLove {
			t.Errorf("bad body: %+v err=%v", req, err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uuid":"2b1b0e6e-7d6f-4f3c-9a44-1f2d3c4b5a69","reaction_type":"love"}`))
	}))
	defer hs.Close()

	tokens, fp := newTestIdentity()
	c := New(hs.URL, WithCredentials(tokens), WithFingerprint(fp))
	re, err := c.CreateReaction(context.Background(), CreateReactionRequest{ProjectID: 13, Kind: ReactionLove})
	if err != nil {
		t.Fatalf("CreateReaction: %v", err)
	}
	if re.Kind != ReactionLove || re.UUID == "" {
		t.Fatalf("unexpected reaction %+v", re)
	}
}

func TestClient_CreateReaction_RejectsUnknownKind(t *testing.T) {
	c := New("http://unused")
	if _, err := c.CreateReaction(context.Background(), CreateReactionRequest{ProjectID: 13, Kind: "meh"}); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestClient_DeleteReaction(t *testing.T) {
	var gotPath string
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hs.Close()

	c := New(hs.URL)
	uuid := "2b1b0e6e-7d6f-4f3c-9a44-1f2d3c4b5a69"
	if err := c.DeleteReaction(context.Background(), uuid); err != nil {
		t.Fatalf("DeleteReaction: %v", err)
	}
	if gotPath != "DELETE /reactions/"+uuid+"/" {
		t.Fatalf("path = %q", gotPath)
	}

	if err := c.DeleteReaction(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("invalid uuid accepted")
	}
}

func TestEmojiFor(t *testing.T) {
	for _, kind := range ReactionKinds {
		if EmojiFor(kind) == "" {
			t.Errorf("no emoji for %s", kind)
		}
	}
	if EmojiFor("meh") != "" {
		t.Fatal("unknown kind must map to empty string")
	}
}
