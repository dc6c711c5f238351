package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hackblog/app/models"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
)

func captureLogger() (logr.Logger, *[]string) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})
	return logger, &lines
}

func TestLogger(t *testing.T) {
	logger, lines := captureLogger()
	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusTeapot, rw.Code)
	if assert.Len(t, *lines, 1) {
		logOutput := (*lines)[0]
		assert.Contains(t, logOutput, "GET")
		assert.Contains(t, logOutput, "/test")
		assert.Contains(t, logOutput, "418")
		assert.Contains(t, logOutput, "took")
	}
}

func TestRecoverer(t *testing.T) {
	logger, lines := captureLogger()
	handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	if assert.Len(t, *lines, 1) {
		assert.Contains(t, (*lines)[0], "test panic")
	}
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedHeader string
	}{
		{
			name:           "API route",
			path:           "/api/test",
			expectedHeader: "application/json",
		},
		{
			name:           "Non-API route",
			path:           "/test",
			expectedHeader: "",
		},
		{
			name:           "Short path",
			path:           "/",
			expectedHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			contentType := w.Header().Get("Content-Type")
			assert.Equal(t, tt.expectedHeader, contentType)
		})
	}
}

type fixedViewer struct{ viewer *models.Viewer }

func (f fixedViewer) Viewer(*http.Request) *models.Viewer { return f.viewer }

func TestLoadViewer(t *testing.T) {
	tests := []struct {
		name   string
		viewer *models.Viewer
		want   string
	}{
		{name: "anonymous", viewer: nil, want: ""},
		{name: "logged in", viewer: &models.Viewer{Name: "Marco"}, want: "Marco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := LoadViewer(fixedViewer{tt.viewer})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if v := ViewerFrom(r.Context()); v != nil {
					got = v.Name
				}
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	logger := logr.Discard()
	handler := Logger(logger)(Recoverer(logger)(ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "panic") {
			panic("test panic")
		}
		w.WriteHeader(http.StatusOK)
	}))))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "Normal API request",
			path:           "/api/test",
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
		},
		{
			name:           "Panic request",
			path:           "/api/panic",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   "text/plain; charset=utf-8", // Error responses use text/plain
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedType, w.Header().Get("Content-Type"))
		})
	}
}
