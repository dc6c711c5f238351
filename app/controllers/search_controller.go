package controllers

import (
	"context"
	"strings"

	"hackblog/app/models"
	"hackblog/app/services"

	"github.com/go-logr/logr"
)

// SearchController backs the search view.
type SearchController struct {
	posts *services.PostService
	log   logr.Logger

	State   State
	Query   string
	Results []*models.Post
}

// NewSearchController creates an idle SearchController.
func NewSearchController(posts *services.PostService, logger logr.Logger) *SearchController {
	return &SearchController{
		posts: posts,
		log:   logger.WithName("search"),
		State: StateIdle,
	}
}

// Search runs query. A failed search keeps earlier results, or shows the
// empty state when there were none.
func (c *SearchController) Search(ctx context.Context, query string) {
	c.State = StateSearching

	results, err := c.posts.Search(ctx, query)
	if err != nil {
		swallow(c.log, err, "search", "failed to search posts", "query", query)
		c.settle()
		return
	}
	c.Results = results
	c.settle()
}

// SubmitQuery runs a search for a non blank query typed by the viewer.
func (c *SearchController) SubmitQuery(ctx context.Context, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	c.Query = query
	c.Search(ctx, query)
	return true
}

// ToggleLike toggles the like of a post in the results.
func (c *SearchController) ToggleLike(ctx context.Context, postID string) bool {
	if !containsPost(c.Results, postID) {
		return false
	}
	updated, err := c.posts.ToggleLike(ctx, postID)
	if err != nil {
		c.log.Error(err, "failed to toggle like", "post", postID)
		return false
	}
	replacePost(c.Results, updated)
	return true
}

// Summaries projects the results.
func (c *SearchController) Summaries() []models.PostSummary {
	return models.Summaries(c.Results)
}

func (c *SearchController) settle() {
	if len(c.Results) == 0 {
		c.State = StateEmpty
		return
	}
	c.State = StateResults
}
