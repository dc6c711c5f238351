package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before the post is stored
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.CommentsLoaded {
		p.CommentCount = len(p.Comments)
	}
	for _, c := range p.Comments {
		c.PostID = p.ID
	}
}

// ToggleLike flips the viewer's like and moves the count by one.
// The count never drops below zero.
func (p *Post) ToggleLike() {
	if p.Liked {
		p.Liked = false
		if p.Likes > 0 {
			p.Likes--
		}
		return
	}
	p.Liked = true
	p.Likes++
}

// AddComment appends a comment to the end of the post's comments
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	p.CommentCount++
	return nil
}

// Clone returns a deep copy that shares no slices with p.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	if p.Comments != nil {
		cp.Comments = make([]*Comment, len(p.Comments))
		for i, c := range p.Comments {
			cc := *c
			cp.Comments[i] = &cc
		}
	}
	return &cp
}
