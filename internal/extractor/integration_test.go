//go:build integration

package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pauljones0/fb-page-extractor/internal/config"
	"github.com/pauljones0/fb-page-extractor/internal/graph"
	"github.com/pauljones0/fb-page-extractor/internal/output"
)

// Integration test that wires the real Graph client against a fake Graph API
// server and writes the result with the real output writer.

func TestIntegration_FullPipeline(t *testing.T) {
	var serverURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "integration-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"message": "Invalid OAuth access token.", "type": "OAuthException", "code": 190}}`)
			return
		}
		switch r.URL.Path {
		case "/v19.0/123":
			fmt.Fprint(w, `{"id": "123", "name": "Integration Page"}`)
		case "/v19.0/123/posts":
			fmt.Fprint(w, `{"data": [
				{"id": "123_1", "created_time": "2023-01-01T12:00:00+0000", "message": "hello", "permalink_url": "http://x/1",
				 "shares": {"count": 2}, "post_reactions_by_type_total": {"data": [{"values": [{"value": {"like": 5}}]}]}},
				{"id": "123_2", "created_time": "2023-01-02T12:00:00+0000", "permalink_url": "http://x/2", "full_picture": "http://img/2.jpg"}
			]}`)
		case "/v19.0/123_1/comments":
			if r.URL.Query().Get("after") == "" {
				fmt.Fprintf(w, `{"data": [{"id": "9", "created_time": "2023-01-01T12:05:00+0000", "permalink_url": "http://x/1/c9", "message": "hi", "like_count": 1}],
					"paging": {"next": "%s/v19.0/123_1/comments?after=p2"}}`, serverURL)
				return
			}
			fmt.Fprint(w, `{"data": [{"id": "10", "created_time": "2023-01-01T12:06:00+0000", "permalink_url": "http://x/1/c10",
				"message": "re", "like_count": 0, "from": {"name": "Jane"}, "parent": {"id": "9"}}]}`)
		case "/v19.0/123_2/comments":
			fmt.Fprint(w, `{"data": []}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	serverURL = srv.URL

	cfg := &config.Config{
		APIToken:       "integration-token",
		PageID:         "123",
		APIVersion:     "v19.0",
		CommentWorkers: 2,
	}
	g := graph.NewWithBaseURL(cfg, srv.URL)

	res, err := New(g, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Posts) != 2 {
		t.Errorf("Expected 2 posts, got %d", len(res.Posts))
	}
	if len(res.Comments) != 2 {
		t.Fatalf("Expected 2 comments across both pages, got %d", len(res.Comments))
	}
	if *res.Comments[1].InReplyTo != "123_9" {
		t.Errorf("Reply in_reply_to = %q, want 123_9", *res.Comments[1].InReplyTo)
	}

	dir := t.TempDir()
	paths, err := output.New(dir).WriteAll(res.Posts, res.Comments)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 tables, got %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p + ".manifest"); err != nil {
			t.Errorf("Missing manifest for %s: %v", filepath.Base(p), err)
		}
	}
}
