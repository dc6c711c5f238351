package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hackblog/app/controllers"
	"hackblog/app/session"
	"hackblog/app/views"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

func pageParam(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil {
		return 1
	}
	return page
}

func feedPage(fc *controllers.FeedController) *views.FeedPage {
	return &views.FeedPage{
		Posts:      views.Cards(fc.Summaries(), "feed", fc.Page, ""),
		MostLiked:  views.Cards(fc.MostLikedSummaries(), "feed", fc.Page, ""),
		Page:       fc.Page,
		TotalPages: fc.TotalPages,
		Pages:      fc.Pages(),
		HasPrev:    fc.HasPrev(),
		HasNext:    fc.HasNext(),
	}
}

func searchPage(sc *controllers.SearchController) *views.SearchPage {
	return &views.SearchPage{
		Query:   sc.Query,
		State:   string(sc.State),
		Results: views.Cards(sc.Summaries(), "search", 0, sc.Query),
	}
}

// Feed renders the home feed
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	fc := h.feedController()
	fc.LoadFeed(r.Context(), pageParam(r.URL.Query().Get("page")))
	fc.LoadMostLiked(r.Context())

	page := h.page(r, "")
	page.Feed = feedPage(fc)
	h.render(w, r, http.StatusOK, "feed", page)
}

// Post renders a post with its comments. ?comments=all opens the modal.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	pc := h.postController(r)
	pc.LoadPost(r.Context(), mux.Vars(r)["id"])
	if r.URL.Query().Get("comments") == "all" {
		pc.OpenComments()
	}
	h.renderPost(w, r, pc)
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, pc *controllers.PostController) {
	h.renderPostError(w, r, pc, http.StatusOK, "")
}

// renderPostError renders the post with msg above its comment form. The
// comment buffers stay filled so the viewer can send them again.
func (h *Handler) renderPostError(w http.ResponseWriter, r *http.Request, pc *controllers.PostController, status int, msg string) {
	detail, ok := pc.Detail()
	if !ok {
		h.render(w, r, http.StatusNotFound, "not_found", h.page(r, "Post not found"))
		return
	}
	page := h.page(r, detail.Title)
	page.Error = msg
	page.Post = &views.PostPage{
		Post:       detail,
		Inline:     pc.InlineComments(),
		HasMore:    pc.HasMoreComments(),
		ModalOpen:  pc.CommentsOpen,
		Input:      pc.Input,
		ModalInput: pc.ModalInput,
	}
	h.render(w, r, status, "post", page)
}

// LikePost toggles the like of a post from its detail view
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	pc := h.postController(r)
	pc.LoadPost(r.Context(), id)
	if pc.State == controllers.StateNotFound {
		h.renderPost(w, r, pc)
		return
	}
	pc.ToggleLike(r.Context())
	http.Redirect(w, r, "/post/"+url.PathEscape(id), http.StatusSeeOther)
}

// AddComment appends a comment from the inline form or the comments modal
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	pc := h.postController(r)
	pc.LoadPost(r.Context(), id)
	if pc.State == controllers.StateNotFound {
		h.renderPost(w, r, pc)
		return
	}

	target := "/post/" + url.PathEscape(id)
	if r.FormValue("from") == "modal" {
		pc.OpenComments()
		pc.SubmitModalComment(r.Context(), r.FormValue("content"))
		target += "?comments=all"
	} else {
		pc.SubmitComment(r.Context(), r.FormValue("content"))
	}

	var invalid validator.ValidationErrors
	switch err := pc.CommentErr; {
	case err == nil:
		http.Redirect(w, r, target, http.StatusSeeOther)
	case errors.As(err, &invalid):
		h.renderPostError(w, r, pc, http.StatusBadRequest, "Your comment could not be posted.")
	default:
		h.renderPostError(w, r, pc, http.StatusBadGateway, "Your comment could not be posted. Please try again.")
	}
}

// LikeCard toggles the like of a feed or search card and returns to that view
func (h *Handler) LikeCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]

	if r.FormValue("from") == "search" {
		sc := h.searchController()
		if sc.SubmitQuery(r.Context(), r.FormValue("q")) {
			sc.ToggleLike(r.Context(), id)
		}
		http.Redirect(w, r, searchURL(sc.Query), http.StatusSeeOther)
		return
	}

	fc := h.feedController()
	fc.LoadFeed(r.Context(), pageParam(r.FormValue("page")))
	fc.LoadMostLiked(r.Context())
	fc.ToggleLike(r.Context(), id)
	http.Redirect(w, r, "/?page="+strconv.Itoa(fc.Page), http.StatusSeeOther)
}

func searchURL(query string) string {
	if query == "" {
		return "/search"
	}
	return "/search?q=" + url.QueryEscape(query)
}

// Search renders the search page for ?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sc := h.searchController()
	sc.SubmitQuery(r.Context(), r.URL.Query().Get("q"))

	page := h.page(r, "Search")
	page.Query = sc.Query
	page.Search = searchPage(sc)
	h.render(w, r, http.StatusOK, "search", page)
}

// SubmitSearch moves a submitted query into the search URL
func (h *Handler) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, searchURL(strings.TrimSpace(r.FormValue("q"))), http.StatusSeeOther)
}

// Login renders the login form
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", h.page(r, "Login"))
}

// Register renders the register form. Registering only picks a display name.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", h.page(r, "Register"))
}

// CreateSession logs the viewer in under the submitted name
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	_, err := h.sessions.Login(w, r, r.FormValue("name"), h.guestAvatar)
	if errors.Is(err, session.ErrInvalidName) {
		page := h.page(r, "Login")
		page.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, "login", page)
		return
	}
	if err != nil {
		h.log.Error(err, "failed to log in")
		sendError(w, r, "Failed to log in", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DestroySession logs the viewer out
func (h *Handler) DestroySession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.log.Error(err, "failed to log out")
		sendError(w, r, "Failed to log out", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
