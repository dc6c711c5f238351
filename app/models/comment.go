package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout renders dates as "27 May 2025".
const DateLayout = "2 Jan 2006"

// NewComment builds a comment by author from the trimmed content, dated now.
// The id is a time-ordered uuid, so ids sort by creation.
func NewComment(author Author, content string, now time.Time) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate comment id: %w", err)
	}

	return &Comment{
		ID:        "comment-" + id.String(),
		Author:    author,
		Content:   content,
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}, nil
}

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Date == "" {
		c.Date = c.CreatedAt.Format(DateLayout)
	}
}

// SetPost sets the parent post id
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}
