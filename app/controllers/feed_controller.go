package controllers

import (
	"context"

	"hackblog/app/models"
	"hackblog/app/services"

	"github.com/go-logr/logr"
)

// FeedController backs the home feed and its most liked sidebar.
type FeedController struct {
	posts *services.PostService
	log   logr.Logger

	State      State
	Page       int
	TotalPages int
	Posts      []*models.Post
	MostLiked  []*models.Post
}

// NewFeedController creates a FeedController on page 1.
func NewFeedController(posts *services.PostService, logger logr.Logger) *FeedController {
	return &FeedController{
		posts: posts,
		log:   logger.WithName("feed"),
		State: StateReady,
		Page:  1,
	}
}

// LoadFeed loads the feed page. On failure the previous posts and page stay.
func (c *FeedController) LoadFeed(ctx context.Context, page int) {
	c.State = StateLoading
	defer func() { c.State = StateReady }()

	page = clampPage(page, c.TotalPages)
	posts, total, err := c.posts.Feed(ctx, page)
	if err != nil {
		swallow(c.log, err, "feed", "failed to fetch posts", "page", page)
		return
	}
	c.Posts = posts
	c.TotalPages = total
	c.Page = clampPage(page, total)
}

// LoadMostLiked loads the most liked list, independent of the page.
func (c *FeedController) LoadMostLiked(ctx context.Context) {
	c.State = StateLoading
	defer func() { c.State = StateReady }()

	posts, err := c.posts.MostLiked(ctx)
	if err != nil {
		swallow(c.log, err, "most_liked", "failed to fetch most liked posts")
		return
	}
	c.MostLiked = posts
}

// ChangePage moves to page, clamped into [1, TotalPages], and reloads the feed.
func (c *FeedController) ChangePage(ctx context.Context, page int) {
	c.LoadFeed(ctx, clampPage(page, c.TotalPages))
}

// ToggleLike toggles the like of a post shown in the feed or the most liked
// list. Every entry with that id shows the updated post afterwards.
// It reports false when neither list holds the id or the store failed.
func (c *FeedController) ToggleLike(ctx context.Context, postID string) bool {
	if !containsPost(c.Posts, postID) && !containsPost(c.MostLiked, postID) {
		return false
	}
	updated, err := c.posts.ToggleLike(ctx, postID)
	if err != nil {
		c.log.Error(err, "failed to toggle like", "post", postID)
		return false
	}
	replacePost(c.Posts, updated)
	replacePost(c.MostLiked, updated)
	return true
}

// Summaries projects the feed posts.
func (c *FeedController) Summaries() []models.PostSummary {
	return models.Summaries(c.Posts)
}

// MostLikedSummaries projects the most liked posts.
func (c *FeedController) MostLikedSummaries() []models.PostSummary {
	return models.Summaries(c.MostLiked)
}

// HasPrev reports whether a previous page exists.
func (c *FeedController) HasPrev() bool {
	return c.Page > 1
}

// HasNext reports whether a next page exists.
func (c *FeedController) HasNext() bool {
	return c.Page < c.TotalPages
}

// Pages lists the page numbers for the page indicator.
func (c *FeedController) Pages() []int {
	pages := make([]int, 0, c.TotalPages)
	for i := 1; i <= c.TotalPages; i++ {
		pages = append(pages, i)
	}
	return pages
}

// clampPage keeps page within [1, total]. An unknown total (0) only
// bounds the page from below.
func clampPage(page, total int) int {
	if total > 0 && page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}
