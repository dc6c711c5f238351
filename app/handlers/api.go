package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hackblog/app/controllers"
	"hackblog/app/middleware"
	"hackblog/app/models"
	"hackblog/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// APIFeed returns one feed page
func (h *Handler) APIFeed(w http.ResponseWriter, r *http.Request) {
	fc := h.feedController()
	fc.LoadFeed(r.Context(), pageParam(r.URL.Query().Get("page")))
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts":       fc.Summaries(),
		"page":        fc.Page,
		"total_pages": fc.TotalPages,
	})
}

// APIMostLiked returns the most liked posts
func (h *Handler) APIMostLiked(w http.ResponseWriter, r *http.Request) {
	fc := h.feedController()
	fc.LoadMostLiked(r.Context())
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": fc.MostLikedSummaries(),
	})
}

// APIPost returns a post with its comments
func (h *Handler) APIPost(w http.ResponseWriter, r *http.Request) {
	pc := h.postController(r)
	pc.LoadPost(r.Context(), mux.Vars(r)["id"])
	detail, ok := pc.Detail()
	if !ok {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, detail)
}

// APILikePost toggles the like of a post
func (h *Handler) APILikePost(w http.ResponseWriter, r *http.Request) {
	pc := h.postController(r)
	pc.LoadPost(r.Context(), mux.Vars(r)["id"])
	if pc.State == controllers.StateNotFound {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if !pc.ToggleLike(r.Context()) {
		sendError(w, r, "Failed to toggle like", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, pc.Post.Summary())
}

// APIComments lists the comments of a post in order
func (h *Handler) APIComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListComments(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error(err, "failed to list comments")
		sendError(w, r, "Failed to fetch comments", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
	})
}

type commentRequest struct {
	Content string `json:"content"`
}

// APICreateComment appends a comment to a post
func (h *Handler) APICreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	_, comment, err := h.comments.AddComment(r.Context(), mux.Vars(r)["id"], middleware.ViewerFrom(r.Context()), req.Content, "api")
	var invalid validator.ValidationErrors
	switch {
	case err == nil:
		sendJSON(w, http.StatusCreated, comment)
	case errors.Is(err, models.ErrEmptyComment), errors.As(err, &invalid):
		sendError(w, r, "Invalid comment: "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		sendError(w, r, "Post not found", http.StatusNotFound)
	default:
		h.log.Error(err, "failed to add comment")
		sendError(w, r, "Failed to add comment", http.StatusBadGateway)
	}
}

// APISearch returns the posts matching ?q=
func (h *Handler) APISearch(w http.ResponseWriter, r *http.Request) {
	sc := h.searchController()
	sc.SubmitQuery(r.Context(), r.URL.Query().Get("q"))
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"query": sc.Query,
		"state": sc.State,
		"posts": sc.Summaries(),
	})
}
