package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hackblog/app/models"
	"hackblog/app/repositories/mock"
	"hackblog/app/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallbackAuthor = models.Author{ID: "author-1", Name: "John Doe", Avatar: "/static/image-6.png"}

func setupCommentService(t *testing.T) (*CommentService, *source.Flaky, *mock.PostRepository) {
	src := source.NewFlaky(source.NewMock(0))
	repo := mock.NewPostRepository()
	service := NewCommentService(src, repo, fallbackAuthor)
	service.now = func() time.Time { return time.Date(2025, time.May, 27, 9, 0, 0, 0, time.UTC) }
	return service, src, repo
}

func TestCommentService(t *testing.T) {
	service, src, repo := setupCommentService(t)
	ctx := context.Background()

	t.Run("append by anonymous viewer", func(t *testing.T) {
		post, comment, err := service.AddComment(ctx, "abc", nil, "  nice post ", "form")
		require.NoError(t, err)
		assert.Equal(t, "nice post", comment.Content)
		assert.Equal(t, fallbackAuthor, comment.Author)
		assert.Equal(t, "27 May 2025", comment.Date)
		assert.Equal(t, "abc", comment.PostID)

		require.Len(t, post.Comments, 6)
		assert.Equal(t, "nice post", post.Comments[5].Content)
		assert.Equal(t, "comment-1", post.Comments[0].ID)
		assert.Equal(t, 6, post.CommentCount)
	})

	t.Run("append by logged in viewer", func(t *testing.T) {
		viewer := &models.Viewer{Name: "Clarissa"}
		post, comment, err := service.AddComment(ctx, "abc", viewer, "hello", "modal")
		require.NoError(t, err)
		assert.Equal(t, "Clarissa", comment.Author.Name)
		require.Len(t, post.Comments, 7)
		assert.Equal(t, "hello", post.Comments[6].Content)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		for _, text := range []string{"", "   "} {
			_, _, err := service.AddComment(ctx, "abc", nil, text, "form")
			assert.ErrorIs(t, err, models.ErrEmptyComment)
		}
		stored, err := repo.GetByID("abc")
		require.NoError(t, err)
		assert.Len(t, stored.Comments, 7)
	})

	t.Run("long text is appended", func(t *testing.T) {
		text := strings.Repeat("x", 5000)
		post, comment, err := service.AddComment(ctx, "abc", nil, text, "api")
		require.NoError(t, err)
		assert.Equal(t, text, comment.Content)
		require.Len(t, post.Comments, 8)
	})

	t.Run("source rejection keeps the store untouched", func(t *testing.T) {
		src.Fail(source.OpPostComment, errors.New("offline"))
		defer src.Heal()

		_, _, err := service.AddComment(ctx, "abc", nil, "lost", "form")
		assert.Error(t, err)

		stored, err := repo.GetByID("abc")
		require.NoError(t, err)
		assert.Len(t, stored.Comments, 8)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, _, err := service.AddComment(ctx, "", nil, "hello", "api")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list keeps order", func(t *testing.T) {
		comments, err := service.ListComments(ctx, "abc")
		require.NoError(t, err)
		require.Len(t, comments, 8)
		assert.Equal(t, "comment-1", comments[0].ID)
		assert.Equal(t, "hello", comments[6].Content)
	})
}
