package mock

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"hackblog/app/models"
	"hackblog/app/repositories"
)

// PostRepository is an in-memory PostRepository.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Clone(), nil
}

func (m *PostRepository) Merge(post *models.Post, fn repositories.MergeFunc) (*models.Post, error) {
	if post == nil {
		return nil, errors.New("post cannot be nil")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	next := post.Clone()
	if stored, exists := m.posts[post.ID]; exists && fn != nil {
		next = fn(stored.Clone(), next)
	}
	if err := m.put(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func (m *PostRepository) Update(id string, fn func(post *models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := stored.Clone()
	if err := fn(post); err != nil {
		return nil, err
	}
	if err := m.put(post); err != nil {
		return nil, err
	}
	return post.Clone(), nil
}

func (m *PostRepository) List(limit, offset int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]string, 0, len(m.posts))
	for id := range m.posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var posts []*models.Post
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(posts) >= limit {
			break
		}
		posts = append(posts, m.posts[id].Clone())
	}
	return posts, nil
}

func (m *PostRepository) put(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post %s: %w", post.ID, err)
	}
	m.posts[post.ID] = post.Clone()
	return nil
}
