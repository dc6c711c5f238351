package services

import (
	"context"
	"fmt"
	"time"

	"hackblog/app/metrics"
	"hackblog/app/models"
	"hackblog/app/repositories"
	"hackblog/app/source"
)

// CommentService appends comments to stored posts
type CommentService struct {
	source   source.Source
	posts    repositories.PostRepository
	loader   *PostService
	fallback models.Author
	now      func() time.Time
}

// NewCommentService creates a new CommentService. Comments of anonymous
// viewers are signed with fallback.
func NewCommentService(src source.Source, posts repositories.PostRepository, fallback models.Author) *CommentService {
	return &CommentService{
		source:   src,
		posts:    posts,
		loader:   NewPostService(src, posts),
		fallback: fallback,
		now:      time.Now,
	}
}

// AddComment appends text as a new comment by viewer to the post with id.
// via names the surface the comment came from, for metrics.
func (s *CommentService) AddComment(ctx context.Context, id string, viewer *models.Viewer, text, via string) (*models.Post, *models.Comment, error) {
	comment, err := models.NewComment(viewer.AsAuthor(s.fallback), text, s.now())
	if err != nil {
		return nil, nil, err
	}
	comment.PostID = id
	if err := comment.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid comment: %w", err)
	}

	// The full comment sequence must be in the store before appending to it.
	if _, err := s.loader.ensure(ctx, id); err != nil {
		return nil, nil, err
	}

	if err := s.source.PostComment(ctx, id, comment); err != nil {
		return nil, nil, fmt.Errorf("post comment on %s: %w", id, err)
	}

	post, err := s.posts.Update(id, func(p *models.Post) error {
		return p.AddComment(comment)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store comment on %s: %w", id, err)
	}

	metrics.CommentsAdded.WithLabelValues(via).Inc()
	return post, comment, nil
}

// ListComments returns the comments of a post in order
func (s *CommentService) ListComments(ctx context.Context, id string) ([]*models.Comment, error) {
	post, err := s.loader.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
