package repositories

import (
	"errors"
	"fmt"

	"hackblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// maxConflictRetries bounds how often a read-modify-write is retried
// after badger reports a conflicting concurrent transaction.
const maxConflictRetries = 32

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, postKey(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Merge stores post. If a post with the same id is already stored, fn decides
// what the new stored version is; a nil fn keeps the incoming post.
func (r *BadgerPostRepository) Merge(post *models.Post, fn MergeFunc) (*models.Post, error) {
	if post == nil {
		return nil, errors.New("post cannot be nil")
	}

	var out *models.Post
	err := r.update(func(txn *badger.Txn) error {
		key := postKey(post.ID)
		next := post.Clone()

		stored, err := getPost(txn, key)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		case fn != nil:
			next = fn(stored, next)
		}

		if err := putPost(txn, key, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies fn to the stored post and saves the result atomically
func (r *BadgerPostRepository) Update(id string, fn func(post *models.Post) error) (*models.Post, error) {
	var out *models.Post
	err := r.update(func(txn *badger.Txn) error {
		key := postKey(id)
		post, err := getPost(txn, key)
		if err != nil {
			return err
		}
		if err := fn(post); err != nil {
			return err
		}
		if err := putPost(txn, key, post); err != nil {
			return err
		}
		out = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List retrieves a paginated list of posts ordered by id
func (r *BadgerPostRepository) List(limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		// Skip offset items
		count := 0
		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BadgerPostRepository) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func getPost(txn *badger.Txn, key []byte) (*models.Post, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}

func putPost(txn *badger.Txn, key []byte, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post %s: %w", post.ID, err)
	}
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}
