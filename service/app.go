package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hackblog/app/config"
	"hackblog/app/handlers"
	"hackblog/app/models"
	"hackblog/app/repositories"
	"hackblog/app/routes"
	"hackblog/app/services"
	"hackblog/app/session"
	"hackblog/app/source"
	"hackblog/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
)

const shutdownTimeout = 5 * time.Second

// App is the wired blog: post store, services and HTTP handler.
type App struct {
	DB       *badger.DB
	Posts    *services.PostService
	Comments *services.CommentService
	Handler  http.Handler
}

// NewApp opens the post store and wires the blog for opts.
func NewApp(opts *config.Options, logger logr.Logger) (*App, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	db, err := repositories.Open(opts.DataDir, logger)
	if err != nil {
		return nil, err
	}
	repo := repositories.NewBadgerPostRepository(db)
	src := source.NewMock(opts.MockDelay)
	fallback := models.Author{ID: "viewer", Name: opts.ViewerName, Avatar: opts.ViewerAvatar}

	posts := services.NewPostService(src, repo)
	comments := services.NewCommentService(src, repo, fallback)

	renderer, err := services.NewRenderer(opts.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	templates, err := views.Load(renderer)
	if err != nil {
		db.Close()
		return nil, err
	}
	sessions, err := session.NewStore(opts.SessionSecret)
	if err != nil {
		db.Close()
		return nil, err
	}

	h := handlers.New(handlers.Options{
		Posts:       posts,
		Comments:    comments,
		Sessions:    sessions,
		Templates:   templates,
		Logger:      logger.WithName("handlers"),
		GuestAvatar: opts.ViewerAvatar,
	})

	return &App{
		DB:       db,
		Posts:    posts,
		Comments: comments,
		Handler:  routes.SetupRoutes(h, sessions, logger),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// RunAppServer serves the blog until ctx is done, then shuts down gracefully.
func RunAppServer(ctx context.Context, opts *config.Options, logger logr.Logger) error {
	if opts.SessionSecret == config.DevSessionSecret {
		logger.Info("using the development session secret, set --session-secret in production")
	}

	app, err := NewApp(opts, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	server := &http.Server{
		Addr:              opts.Listen,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting blog service", "listen", opts.Listen, "data-dir", opts.DataDir)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("blog server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down blog service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Seed stores every mock post with its comments.
func Seed(ctx context.Context, app *App) (int, error) {
	feed, total, err := app.Posts.Feed(ctx, 1)
	if err != nil {
		return 0, err
	}
	for page := 2; page <= total; page++ {
		more, _, err := app.Posts.Feed(ctx, page)
		if err != nil {
			return 0, err
		}
		feed = append(feed, more...)
	}
	liked, err := app.Posts.MostLiked(ctx)
	if err != nil {
		return 0, err
	}
	found, err := app.Posts.Search(ctx, source.SearchToken)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	for _, p := range append(append(feed, liked...), found...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if _, err := app.Posts.GetPost(ctx, p.ID); err != nil {
			return 0, fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}
	return len(seen), nil
}
