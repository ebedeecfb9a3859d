package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_ListComments(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/" || r.URL.Query().Get("project_id") != "13" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"id":5,"username":"pat","text":"so cool"}]}`))
	}))
	defer hs.Close()

	page, err := New(hs.URL).ListComments(context.Background(), ListCommentsParams{ProjectID: 13})
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Username != "pat" {
		t.Fatalf("unexpected page %+v", page)
	}

	if _, err := New(hs.URL).ListComments(context.Background(), ListCommentsParams{}); err == nil {
		t.Fatal("missing project_id must be rejected locally")
	}
}

func TestClient_AddComment(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/comments/add/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req AddCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProjectID != 13 {
			t.Errorf("bad request body: %+v err=%v", req, err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":6,"username":"ada","text":"nice work","parent_uuid":"u1"}`))
	}))
	defer hs.Close()

	cm, err := New(hs.URL).AddComment(context.Background(), AddCommentRequest{ProjectID: 13, Username: "ada", Text: "nice work"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if cm.ID != 6 || cm.ParentUUID != "u1" {
		t.Fatalf("unexpected comment %+v", cm)
	}
}

func TestClient_AddComment_LocalValidation(t *testing.T) {
	c := New("http://unused")
	cases := []AddCommentRequest{
		{ProjectID: 0, Username: "ada", Text: "hi there"},
		{ProjectID: 1, Username: "", Text: "hi there"},
		{ProjectID: 1, Username: "ada", Text: ""},
		{ProjectID: 1, Username: "ada", Text: "x"},
		{ProjectID: 1, Username: "ada", Text: strings.Repeat("a", 501)},
	}
	for i, req := range cases {
		if _, err := c.AddComment(context.Background(), req); err == nil {
			t.Errorf("case %d: invalid comment accepted", i)
		}
	}
}

func TestClient_DeleteComment(t *testing.T) {
	var gotPath string
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hs.Close()

	if err := New(hs.URL).DeleteComment(context.Background(), 6); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if gotPath != "DELETE /comments/6/" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestClient_ListCommentOptions(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/options/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`["Great job!", "So creative!"]`))
	}))
	defer hs.Close()

	opts, err := New(hs.URL).ListCommentOptions(context.Background())
	if err != nil {
		t.Fatalf("ListCommentOptions: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("options = %v", opts)
	}
}
