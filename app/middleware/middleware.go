package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hackblog/app/metrics"
	"hackblog/app/models"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger logs information about each request and records its latency
func Logger(logger logr.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			metrics.RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Observe(duration.Seconds())
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", duration)
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(logger logr.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(fmt.Errorf("%v", err), "PANIC", "method", r.Method, "path", r.URL.Path)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON sets the Content-Type header to application/json for API routes
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

type viewerKey struct{}

// ViewerSource resolves the viewer of a request.
type ViewerSource interface {
	Viewer(r *http.Request) *models.Viewer
}

// LoadViewer puts the viewer of the session into the request context
func LoadViewer(src ViewerSource) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer := src.Viewer(r); viewer != nil {
				r = r.WithContext(WithViewer(r.Context(), viewer))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithViewer(ctx context.Context, viewer *models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the viewer stored in ctx, nil when anonymous.
func ViewerFrom(ctx context.Context) *models.Viewer {
	viewer, _ := ctx.Value(viewerKey{}).(*models.Viewer)
	return viewer
}
