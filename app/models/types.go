package models

import "time"

// MaxIDLength is the longest accepted post or comment id.
const MaxIDLength = 128

// Author is the byline of a post or a comment. Authors never change at runtime.
type Author struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required,min=2,max=50"`
	Avatar string `json:"avatar,omitempty"`
}

// Post is the canonical stored blog post. Views read it through the
// PostSummary and PostDetail projections.
type Post struct {
	ID           string     `json:"id" validate:"required,max=128"`
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Body         string     `json:"body" validate:"required,min=10"`
	Image        string     `json:"image,omitempty"`
	Author       Author     `json:"author"`
	Tags         []string   `json:"tags" validate:"dive,required"`
	Likes        int        `json:"likes" validate:"gte=0"`
	Liked        bool       `json:"liked"`
	CreatedAt    time.Time  `json:"created_at"`
	CommentCount int        `json:"comment_count" validate:"gte=0"`
	Comments     []*Comment `json:"comments,omitempty" validate:"dive"`

	// CommentsLoaded reports whether Comments holds the full sequence.
	// While false only CommentCount is meaningful.
	CommentsLoaded bool `json:"comments_loaded"`
}

// Comment is an append-only remark on a post.
type Comment struct {
	ID        string    `json:"id" validate:"required,max=128"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content" validate:"required,min=1"`
	Date      string    `json:"date" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Viewer is the person browsing the blog, if they logged in.
type Viewer struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
