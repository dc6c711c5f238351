package source

import (
	"context"
	"sync"

	"hackblog/app/models"
)

// Operation names accepted by Flaky.
const (
	OpGetFeed      = "GetFeed"
	OpGetMostLiked = "GetMostLiked"
	OpGetPost      = "GetPost"
	OpSearch       = "Search"
	OpPostComment  = "PostComment"
)

// Flaky wraps a Source and makes chosen operations fail. It lets callers
// exercise the failure paths the mock never takes.
type Flaky struct {
	Source Source

	mu   sync.Mutex
	fail map[string]error
}

func NewFlaky(src Source) *Flaky {
	return &Flaky{Source: src, fail: make(map[string]error)}
}

// Fail makes op return err until Heal is called. A nil err heals op.
func (f *Flaky) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// Heal clears every injected failure.
func (f *Flaky) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = make(map[string]error)
}

func (f *Flaky) err(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[op]
}

func (f *Flaky) GetFeed(ctx context.Context, page int) (*FeedPage, error) {
	if err := f.err(OpGetFeed); err != nil {
		return nil, err
	}
	return f.Source.GetFeed(ctx, page)
}

func (f *Flaky) GetMostLiked(ctx context.Context) ([]*models.Post, error) {
	if err := f.err(OpGetMostLiked); err != nil {
		return nil, err
	}
	return f.Source.GetMostLiked(ctx)
}

func (f *Flaky) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if err := f.err(OpGetPost); err != nil {
		return nil, err
	}
	return f.Source.GetPost(ctx, id)
}

func (f *Flaky) Search(ctx context.Context, query string) ([]*models.Post, error) {
	if err := f.err(OpSearch); err != nil {
		return nil, err
	}
	return f.Source.Search(ctx, query)
}

func (f *Flaky) PostComment(ctx context.Context, postID string, comment *models.Comment) error {
	if err := f.err(OpPostComment); err != nil {
		return err
	}
	return f.Source.PostComment(ctx, postID, comment)
}
