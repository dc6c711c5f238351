package controllers

import (
	"context"
	"errors"
	"strings"

	"hackblog/app/models"
	"hackblog/app/services"

	"github.com/go-logr/logr"
)

// InlineComments is how many comments the post view shows before the
// comments modal is opened.
const InlineComments = 3

// PostController backs the post detail view and its comments modal.
type PostController struct {
	posts    *services.PostService
	comments *services.CommentService
	viewer   *models.Viewer
	log      logr.Logger

	State        State
	Post         *models.Post
	Input        string
	ModalInput   string
	CommentsOpen bool
	// CommentErr is why the last non blank comment was not appended.
	CommentErr error
}

// NewPostController creates a PostController for viewer, which may be nil
// for an anonymous visitor.
func NewPostController(posts *services.PostService, comments *services.CommentService, viewer *models.Viewer, logger logr.Logger) *PostController {
	return &PostController{
		posts:    posts,
		comments: comments,
		viewer:   viewer,
		log:      logger.WithName("post"),
		State:    StateLoading,
	}
}

// LoadPost loads the post with id. An unknown id, or a failure before any
// post was shown, leaves the controller in StateNotFound. A failure while a
// post is shown keeps it.
func (c *PostController) LoadPost(ctx context.Context, id string) {
	c.State = StateLoading

	post, err := c.posts.GetPost(ctx, id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.Post = nil
		c.State = StateNotFound
		return
	case err != nil:
		swallow(c.log, err, "post", "failed to fetch post", "post", id)
		if c.Post == nil {
			c.State = StateNotFound
		} else {
			c.State = StateReady
		}
		return
	}
	c.Post = post
	c.State = StateReady
}

// ToggleLike toggles the like of the shown post.
func (c *PostController) ToggleLike(ctx context.Context) bool {
	if c.Post == nil {
		return false
	}
	updated, err := c.posts.ToggleLike(ctx, c.Post.ID)
	if err != nil {
		c.log.Error(err, "failed to toggle like", "post", c.Post.ID)
		return false
	}
	c.Post = updated
	return true
}

// SubmitComment appends text from the inline comment form.
func (c *PostController) SubmitComment(ctx context.Context, text string) bool {
	c.Input = text
	if !c.submit(ctx, text, "form") {
		return false
	}
	c.Input = ""
	return true
}

// SubmitModalComment appends text from the comments modal.
func (c *PostController) SubmitModalComment(ctx context.Context, text string) bool {
	c.ModalInput = text
	if !c.submit(ctx, text, "modal") {
		return false
	}
	c.ModalInput = ""
	return true
}

func (c *PostController) submit(ctx context.Context, text, via string) bool {
	c.CommentErr = nil
	if c.Post == nil || strings.TrimSpace(text) == "" {
		return false
	}
	post, _, err := c.comments.AddComment(ctx, c.Post.ID, c.viewer, text, via)
	if err != nil {
		c.log.Error(err, "failed to add comment", "post", c.Post.ID, "via", via)
		c.CommentErr = err
		return false
	}
	c.Post = post
	return true
}

// OpenComments opens the comments modal.
func (c *PostController) OpenComments() {
	if c.Post != nil {
		c.CommentsOpen = true
	}
}

// CloseComments closes the comments modal.
func (c *PostController) CloseComments() {
	c.CommentsOpen = false
}

// Detail projects the shown post. ok is false when no post is shown.
func (c *PostController) Detail() (detail models.PostDetail, ok bool) {
	if c.Post == nil {
		return models.PostDetail{}, false
	}
	return c.Post.Detail(), true
}

// InlineComments returns the first comments shown below the post.
func (c *PostController) InlineComments() []models.Comment {
	detail, ok := c.Detail()
	if !ok {
		return nil
	}
	if len(detail.Comments) > InlineComments {
		return detail.Comments[:InlineComments]
	}
	return detail.Comments
}

// HasMoreComments reports whether the modal holds comments the inline list hides.
func (c *PostController) HasMoreComments() bool {
	return c.Post != nil && len(c.Post.Comments) > InlineComments
}
