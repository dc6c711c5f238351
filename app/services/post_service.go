package services

import (
	"context"
	"errors"
	"fmt"

	"hackblog/app/metrics"
	"hackblog/app/models"
	"hackblog/app/repositories"
	"hackblog/app/source"
)

var (
	// ErrNotFound is returned when no post has the requested id.
	ErrNotFound = errors.New("post not found")
)

// PostService reads posts from the data source through the shared post store.
// Every view of a post id sees the same stored record.
type PostService struct {
	source source.Source
	posts  repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(src source.Source, posts repositories.PostRepository) *PostService {
	return &PostService{
		source: src,
		posts:  posts,
	}
}

// Feed returns one page of the home feed and the total page count
func (s *PostService) Feed(ctx context.Context, page int) ([]*models.Post, int, error) {
	fp, err := s.source.GetFeed(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch feed page %d: %w", page, err)
	}
	posts, err := s.mergeAll(fp.Posts, keepStored)
	if err != nil {
		return nil, 0, err
	}
	return posts, fp.TotalPages, nil
}

// MostLiked returns the most liked posts
func (s *PostService) MostLiked(ctx context.Context) ([]*models.Post, error) {
	fetched, err := s.source.GetMostLiked(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch most liked: %w", err)
	}
	return s.mergeAll(fetched, keepStored)
}

// Search returns the posts matching query
func (s *PostService) Search(ctx context.Context, query string) ([]*models.Post, error) {
	fetched, err := s.source.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return s.mergeAll(fetched, keepStored)
}

// GetPost returns the post with its full comment sequence. The data source is
// only asked when the store has not seen the comments of the post yet. A post
// no list has shown is served from the source without being stored; its first
// like or comment stores it.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	stored, err := s.posts.GetByID(id)
	switch {
	case err == nil && stored.CommentsLoaded:
		return stored, nil
	case err == nil:
		return s.load(ctx, id)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("load post %s: %w", id, err)
	}

	fetched, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	fetched.BeforeCreate()
	return fetched, nil
}

// ToggleLike flips the like of a post. It is the only way likes change.
func (s *PostService) ToggleLike(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	post, err := s.posts.Update(id, toggleLike)
	if errors.Is(err, repositories.ErrNotFound) {
		if _, err = s.load(ctx, id); err != nil {
			return nil, err
		}
		post, err = s.posts.Update(id, toggleLike)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like on %s: %w", id, err)
	}

	direction := "unlike"
	if post.Liked {
		direction = "like"
	}
	metrics.LikesToggled.WithLabelValues(direction).Inc()
	return post, nil
}

// ensure returns the stored post once its comment sequence is in the store.
func (s *PostService) ensure(ctx context.Context, id string) (*models.Post, error) {
	stored, err := s.posts.GetByID(id)
	switch {
	case err == nil && stored.CommentsLoaded:
		return stored, nil
	case err == nil, errors.Is(err, repositories.ErrNotFound):
		return s.load(ctx, id)
	default:
		return nil, fmt.Errorf("load post %s: %w", id, err)
	}
}

// load fetches the detail of a post and merges it into the store.
func (s *PostService) load(ctx context.Context, id string) (*models.Post, error) {
	fetched, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.posts.Merge(fetched, keepViewerState)
}

func (s *PostService) fetch(ctx context.Context, id string) (*models.Post, error) {
	fetched, err := s.source.GetPost(ctx, id)
	if errors.Is(err, source.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch post %s: %w", id, err)
	}
	return fetched, nil
}

func (s *PostService) mergeAll(fetched []*models.Post, fn repositories.MergeFunc) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(fetched))
	for _, p := range fetched {
		merged, err := s.posts.Merge(p, fn)
		if err != nil {
			return nil, fmt.Errorf("store post %s: %w", p.ID, err)
		}
		posts = append(posts, merged)
	}
	return posts, nil
}

// keepStored ignores a refetched summary of a post the store already knows.
func keepStored(stored, _ *models.Post) *models.Post {
	return stored
}

// keepViewerState takes the fetched detail but keeps the viewer's like. Once
// the store holds the comments it keeps the stored post, so a detail fetched
// before a comment was appended cannot drop that comment.
func keepViewerState(stored, incoming *models.Post) *models.Post {
	if stored.CommentsLoaded {
		return stored
	}
	incoming.Likes = stored.Likes
	incoming.Liked = stored.Liked
	return incoming
}

func toggleLike(p *models.Post) error {
	p.ToggleLike()
	return nil
}
