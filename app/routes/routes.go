package routes

import (
	"net/http"

	"hackblog/app/handlers"
	"hackblog/app/metrics"
	"hackblog/app/middleware"
	"hackblog/app/views"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(h *handlers.Handler, viewers middleware.ViewerSource, logger logr.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger.WithName("http")))
	router.Use(middleware.Recoverer(logger.WithName("http")))
	router.Use(middleware.LoadViewer(viewers))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static()))
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", h.Healthz).Methods("GET")

	// Web routes
	router.HandleFunc("/", h.Feed).Methods("GET")
	router.HandleFunc("/like/{id}", h.LikeCard).Methods("POST")
	router.HandleFunc("/search", h.Search).Methods("GET")
	router.HandleFunc("/search", h.SubmitSearch).Methods("POST")

	posts := router.PathPrefix("/post").Subrouter()
	posts.HandleFunc("/{id}", h.Post).Methods("GET")
	posts.HandleFunc("/{id}/like", h.LikePost).Methods("POST")
	posts.HandleFunc("/{id}/comments", h.AddComment).Methods("POST")

	router.HandleFunc("/login", h.Login).Methods("GET")
	router.HandleFunc("/login", h.CreateSession).Methods("POST")
	router.HandleFunc("/register", h.Register).Methods("GET")
	router.HandleFunc("/logout", h.DestroySession).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/feed", h.APIFeed).Methods("GET")
	api.HandleFunc("/most-liked", h.APIMostLiked).Methods("GET")
	api.HandleFunc("/search", h.APISearch).Methods("GET")

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("/{id}", h.APIPost).Methods("GET")
	apiPosts.HandleFunc("/{id}/like", h.APILikePost).Methods("POST")
	apiPosts.HandleFunc("/{id}/comments", h.APIComments).Methods("GET")
	apiPosts.HandleFunc("/{id}/comments", h.APICreateComment).Methods("POST")

	return router
}
