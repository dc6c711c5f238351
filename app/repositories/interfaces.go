package repositories

import "hackblog/app/models"

// MergeFunc combines the stored version of a post with an incoming one.
// The returned post replaces the stored one.
type MergeFunc func(stored, incoming *models.Post) *models.Post

// PostRepository is the normalized post store keyed by post id.
// Implementations hand out copies; mutate stored posts through Update.
type PostRepository interface {
	GetByID(id string) (*models.Post, error)
	Merge(post *models.Post, fn MergeFunc) (*models.Post, error)
	Update(id string, fn func(post *models.Post) error) (*models.Post, error)
	List(limit, offset int) ([]*models.Post, error)
}
