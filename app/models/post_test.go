package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() *Post {
	return &Post{
		ID:        "post-1",
		Title:     "Valid Title",
		Body:      "This is valid content that meets the minimum length requirement",
		Author:    Author{ID: "author-1", Name: "John Doe"},
		Tags:      []string{"Programming", "Frontend"},
		Likes:     20,
		CreatedAt: time.Now(),
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr bool
	}{
		{
			name:    "valid post",
			mutate:  func(p *Post) {},
			wantErr: false,
		},
		{
			name:    "missing id",
			mutate:  func(p *Post) { p.ID = "" },
			wantErr: true,
		},
		{
			name:    "title too short",
			mutate:  func(p *Post) { p.Title = "ab" },
			wantErr: true,
		},
		{
			name:    "body too short",
			mutate:  func(p *Post) { p.Body = "Too short" },
			wantErr: true,
		},
		{
			name:    "negative likes",
			mutate:  func(p *Post) { p.Likes = -1 },
			wantErr: true,
		},
		{
			name:    "empty tag",
			mutate:  func(p *Post) { p.Tags = []string{"Go", ""} },
			wantErr: true,
		},
		{
			name:    "author without name",
			mutate:  func(p *Post) { p.Author.Name = "" },
			wantErr: true,
		},
		{
			name:    "zero creation time",
			mutate:  func(p *Post) { p.CreatedAt = time.Time{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := validPost()
			tt.mutate(post)
			err := post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{
		ID:             "post-1",
		Title:          "Test Post",
		Body:           "Test Content",
		CommentCount:   20,
		CommentsLoaded: true,
		Comments:       []*Comment{{ID: "comment-1", Content: "hi"}},
	}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, 1, post.CommentCount)
	assert.Equal(t, "post-1", post.Comments[0].PostID)
}

func TestPostToggleLike(t *testing.T) {
	t.Run("round trip restores state", func(t *testing.T) {
		for _, start := range []struct {
			likes int
			liked bool
		}{{0, false}, {20, false}, {1, true}, {7, true}} {
			post := &Post{Likes: start.likes, Liked: start.liked}
			post.ToggleLike()
			post.ToggleLike()
			assert.Equal(t, start.likes, post.Likes)
			assert.Equal(t, start.liked, post.Liked)
		}
	})

	t.Run("like increments by one", func(t *testing.T) {
		post := &Post{Likes: 20}
		post.ToggleLike()
		assert.True(t, post.Liked)
		assert.Equal(t, 21, post.Likes)
	})

	t.Run("unlike decrements by one", func(t *testing.T) {
		post := &Post{Likes: 21, Liked: true}
		post.ToggleLike()
		assert.False(t, post.Liked)
		assert.Equal(t, 20, post.Likes)
	})

	t.Run("count never negative", func(t *testing.T) {
		post := &Post{Likes: 0, Liked: true}
		for i := 0; i < 11; i++ {
			post.ToggleLike()
			assert.GreaterOrEqual(t, post.Likes, 0)
		}
	})
}

func TestPostCommentManagement(t *testing.T) {
	post := &Post{
		ID:    "post-1",
		Title: "Test Post",
		Body:  "Test Content",
	}

	t.Run("add comment", func(t *testing.T) {
		comment := &Comment{
			ID:      "comment-1",
			Author:  Author{Name: "Test Author"},
			Content: "Test Comment",
		}

		err := post.AddComment(comment)
		require.NoError(t, err)
		assert.Equal(t, 1, len(post.Comments))
		assert.Equal(t, 1, post.CommentCount)
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("add keeps order", func(t *testing.T) {
		require.NoError(t, post.AddComment(&Comment{ID: "comment-2", Content: "second"}))
		assert.Equal(t, "comment-1", post.Comments[0].ID)
		assert.Equal(t, "comment-2", post.Comments[1].ID)
	})

	t.Run("add nil comment", func(t *testing.T) {
		err := post.AddComment(nil)
		assert.Error(t, err)
	})
}

func TestPostClone(t *testing.T) {
	post := validPost()
	require.NoError(t, post.AddComment(&Comment{ID: "comment-1", Content: "first"}))

	cp := post.Clone()
	cp.Tags[0] = "Changed"
	cp.Comments[0].Content = "changed"
	cp.ToggleLike()

	assert.Equal(t, "Programming", post.Tags[0])
	assert.Equal(t, "first", post.Comments[0].Content)
	assert.False(t, post.Liked)
	assert.Nil(t, (*Post)(nil).Clone())
}
