package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"habitchain/internal/remote"
)

func TestRandom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/random" {
			t.Errorf("path = %q, want /api/random", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"q":"Well begun is half done.","a":"Aristotle"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	q, err := c.Random(context.Background())
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if q.Text != "Well begun is half done." {
		t.Errorf("text = %q", q.Text)
	}
	if q.Author != "Aristotle" {
		t.Errorf("author = %q", q.Author)
	}
}

func TestRandomEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Random(context.Background()); err == nil {
		t.Error("empty provider response should be an error")
	}
}

func TestRandomServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Random(context.Background())
	if !remote.IsNetworkError(err) {
		t.Errorf("err = %v, want a network error", err)
	}
}

func TestRandomUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Random(context.Background())
	if !remote.IsNetworkError(err) {
		t.Errorf("err = %v, want a network error", err)
	}
}
