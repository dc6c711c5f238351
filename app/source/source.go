// Package source is the data-access boundary of the blog. Services read
// posts through a Source; Mock is the canned implementation served today.
package source

import (
	"context"
	"errors"

	"hackblog/app/models"
)

var (
	// ErrNotFound is returned by GetPost when no post has the id.
	ErrNotFound = errors.New("post not found")
)

// FeedPage is one page of the home feed.
type FeedPage struct {
	Posts      []*models.Post
	TotalPages int
}

// Source fetches posts from wherever the blog's content lives.
type Source interface {
	GetFeed(ctx context.Context, page int) (*FeedPage, error)
	GetMostLiked(ctx context.Context) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	PostComment(ctx context.Context, postID string, comment *models.Comment) error
}
