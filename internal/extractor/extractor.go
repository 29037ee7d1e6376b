package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/fb-page-extractor/internal/config"
	"github.com/pauljones0/fb-page-extractor/internal/models"
)

const (
	postFields = "id,created_time,message,permalink_url," +
		"insights.metric(post_reactions_by_type_total).period(lifetime)" +
		".as(post_reactions_by_type_total),shares,full_picture"
	commentFields = "id,created_time,permalink_url,from,parent{id},message,like_count"
)

// Result holds everything extracted in one run.
type Result struct {
	PageName string
	Posts    []models.Record
	Comments []models.Record
}

type Extractor struct {
	graph          GraphAPI
	pageID         string
	commentWorkers int
}

func New(g GraphAPI, cfg *config.Config) *Extractor {
	workers := cfg.CommentWorkers
	if workers < 1 {
		slog.Warn("Invalid comment worker count, using sequential fetch", "workers", workers)
		workers = 1
	}
	return &Extractor{
		graph:          g,
		pageID:         cfg.PageID,
		commentWorkers: workers,
	}
}

// Run resolves the page, then extracts and transforms its posts and their
// comments. The first error aborts the run; nothing is written here.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	pageName, err := e.ResolvePageName(ctx, e.pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page %s: %w", e.pageID, err)
	}
	slog.Info("Resolved page", "id", e.pageID, "name", pageName)

	rawPosts, err := e.FetchPosts(ctx, e.pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of page %s: %w", e.pageID, err)
	}
	posts := TransformPosts(rawPosts, pageName)
	slog.Info("Successfully fetched posts", "count", len(posts))

	comments, err := e.FetchComments(ctx, e.pageID, pageName, posts)
	if err != nil {
		return nil, err
	}
	slog.Info("Successfully fetched comments", "count", len(comments), "posts", len(posts))

	return &Result{PageName: pageName, Posts: posts, Comments: comments}, nil
}

// ResolvePageName returns the display name of the page.
func (e *Extractor) ResolvePageName(ctx context.Context, pageID string) (string, error) {
	var page models.Page
	if err := e.graph.GetObject(ctx, pageID, map[string]string{"fields": "name"}, &page); err != nil {
		return "", err
	}
	return page.Name, nil
}

// FetchPosts returns the first result page of the page's posts.
// TODO: follow paging.next once it is settled whether older posts belong in
// the export; for now the limitation is only logged.
func (e *Extractor) FetchPosts(ctx context.Context, pageID string) ([]models.GraphPost, error) {
	var page models.PostPage
	if err := e.graph.GetObject(ctx, pageID+"/posts", map[string]string{"fields": postFields}, &page); err != nil {
		return nil, err
	}
	if page.Paging != nil && page.Paging.Next != "" {
		slog.Warn("More posts are available but only the first page is extracted", "page", pageID, "count", len(page.Data))
	}
	return page.Data, nil
}

// FetchComments reads the full comment stream of every post. Posts are
// fetched by at most commentWorkers goroutines; the output keeps post order
// and, within a post, API order.
func (e *Extractor) FetchComments(ctx context.Context, pageID, pageName string, posts []models.Record) ([]models.Record, error) {
	perPost := make([][]models.Record, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.commentWorkers)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			comments, err := e.fetchPostComments(gctx, pageID, pageName, post.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch comments of post %s: %w", post.ID, err)
			}
			perPost[i] = comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, c := range perPost {
		total += len(c)
	}
	comments := make([]models.Record, 0, total)
	for _, c := range perPost {
		comments = append(comments, c...)
	}
	return comments, nil
}

func (e *Extractor) fetchPostComments(ctx context.Context, pageID, pageName, postID string) ([]models.Record, error) {
	params := map[string]string{
		"filter": "stream",
		"order":  "reverse_chronological",
		"fields": commentFields,
	}

	var records []models.Record
	err := e.graph.GetAllConnections(ctx, postID, "comments", params, func(raw json.RawMessage) error {
		var c models.GraphComment
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("failed to decode comment: %w", err)
		}
		records = append(records, TransformComment(c, pageID, pageName, postID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
