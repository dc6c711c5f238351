// Package handlers serves the blog views and the JSON API over HTTP.
// Every request mounts fresh view controllers on the shared post store.
package handlers

import (
	"net/http"

	"hackblog/app/controllers"
	"hackblog/app/middleware"
	"hackblog/app/services"
	"hackblog/app/session"
	"hackblog/app/views"

	"github.com/go-logr/logr"
)

// Handler holds the collaborators the controllers of a request need.
type Handler struct {
	posts       *services.PostService
	comments    *services.CommentService
	sessions    *session.Store
	templates   *views.Templates
	log         logr.Logger
	guestAvatar string
}

// Options used to create a Handler. GuestAvatar is the avatar given to
// viewers on login.
type Options struct {
	Posts       *services.PostService
	Comments    *services.CommentService
	Sessions    *session.Store
	Templates   *views.Templates
	Logger      logr.Logger
	GuestAvatar string
}

func New(opts Options) *Handler {
	return &Handler{
		posts:       opts.Posts,
		comments:    opts.Comments,
		sessions:    opts.Sessions,
		templates:   opts.Templates,
		log:         opts.Logger,
		guestAvatar: opts.GuestAvatar,
	}
}

func (h *Handler) feedController() *controllers.FeedController {
	return controllers.NewFeedController(h.posts, h.log)
}

func (h *Handler) postController(r *http.Request) *controllers.PostController {
	return controllers.NewPostController(h.posts, h.comments, middleware.ViewerFrom(r.Context()), h.log)
}

func (h *Handler) searchController() *controllers.SearchController {
	return controllers.NewSearchController(h.posts, h.log)
}

func (h *Handler) page(r *http.Request, title string) *views.Page {
	return &views.Page{
		Title:  title,
		Layout: layoutFor(r),
		Viewer: middleware.ViewerFrom(r.Context()),
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, page *views.Page) {
	if err := h.templates.Render(w, status, name, page); err != nil {
		h.log.Error(err, "failed to render page", "template", name)
		sendError(w, r, "Template error", http.StatusInternalServerError)
	}
}

// Healthz reports that the server is up.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
