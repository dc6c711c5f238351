package views

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hackblog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainMarkdown struct{}

func (plainMarkdown) Render(body string) template.HTML {
	return template.HTML("<p>" + template.HTMLEscapeString(body) + "</p>")
}

func summary(id string) models.PostSummary {
	return models.PostSummary{
		ID:        id,
		Title:     "Title of " + id,
		Excerpt:   "An excerpt",
		Author:    models.Author{Name: "John Doe"},
		Tags:      []string{"Go"},
		Likes:     3,
		CreatedAt: time.Date(2025, time.May, 27, 0, 0, 0, 0, time.UTC),
		DateLabel: "27 May 2025",
	}
}

func render(t *testing.T, name string, page *Page) *httptest.ResponseRecorder {
	t.Helper()
	tmpls, err := Load(plainMarkdown{})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, tmpls.Render(w, http.StatusOK, name, page))
	return w
}

func TestFeedPage(t *testing.T) {
	page := &Page{
		Layout: LayoutWide,
		Feed: &FeedPage{
			Posts:      Cards([]models.PostSummary{summary("post-1")}, "feed", 2, ""),
			MostLiked:  Cards([]models.PostSummary{summary("liked-1")}, "feed", 2, ""),
			Page:       2,
			TotalPages: 3,
			Pages:      []int{1, 2, 3},
			HasPrev:    true,
			HasNext:    true,
		},
	}
	w := render(t, "feed", page)
	body := w.Body.String()

	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, `class="layout-wide"`)
	assert.Contains(t, body, `href="/post/post-1"`)
	assert.Contains(t, body, "Most Liked")
	assert.Contains(t, body, `action="/like/liked-1"`)
	assert.Contains(t, body, `<span class="page current">2</span>`)
	assert.Contains(t, body, `href="/?page=1"`)
	assert.Contains(t, body, `href="/?page=3"`)
	assert.Contains(t, body, "Login")
	assert.Contains(t, body, "Register")
	assert.NotContains(t, body, "Write Post")
}

func TestLayoutViewer(t *testing.T) {
	page := &Page{
		Layout: LayoutNarrow,
		Viewer: &models.Viewer{Name: "Clarissa"},
		Feed:   &FeedPage{},
	}
	body := render(t, "feed", page).Body.String()
	assert.Contains(t, body, `class="layout-narrow"`)
	assert.Contains(t, body, "Write Post")
	assert.Contains(t, body, "Clarissa")
	assert.Contains(t, body, `action="/logout"`)
	assert.NotContains(t, body, `href="/register"`)
}

func TestPostPage(t *testing.T) {
	detail := models.PostDetail{
		PostSummary: summary("abc"),
		Body:        "Hello <b>world</b>",
		Comments: []models.Comment{
			{ID: "comment-1", Author: models.Author{Name: "Marco"}, Content: "first", Date: "27 Mar 2025"},
			{ID: "comment-2", Author: models.Author{Name: "Alexandra"}, Content: "second", Date: "27 Mar 2025"},
		},
	}

	t.Run("inline", func(t *testing.T) {
		body := render(t, "post", &Page{Layout: LayoutWide, Post: &PostPage{Post: detail, Inline: detail.Comments[:1], HasMore: true}}).Body.String()
		assert.Contains(t, body, "<p>Hello &lt;b&gt;world&lt;/b&gt;</p>")
		assert.Contains(t, body, "first")
		assert.NotContains(t, body, "second")
		assert.Contains(t, body, `href="/post/abc?comments=all"`)
		assert.NotContains(t, body, `role="dialog"`)
	})

	t.Run("modal", func(t *testing.T) {
		body := render(t, "post", &Page{Layout: LayoutWide, Post: &PostPage{Post: detail, Inline: detail.Comments[:1], ModalOpen: true}}).Body.String()
		assert.Contains(t, body, `role="dialog"`)
		assert.Contains(t, body, "second")
		assert.Contains(t, body, `value="modal"`)
	})
}

func TestNotFoundPage(t *testing.T) {
	body := render(t, "not_found", &Page{Layout: LayoutWide}).Body.String()
	assert.Contains(t, body, "Post not found")
	assert.Contains(t, body, `href="/"`)
}

func TestSearchPage(t *testing.T) {
	t.Run("empty links home", func(t *testing.T) {
		body := render(t, "search", &Page{Layout: LayoutWide, Search: &SearchPage{Query: "zzz", State: "empty"}}).Body.String()
		assert.Contains(t, body, "Back to Home")
		assert.Contains(t, body, `<a class="button" href="/">Back to Home</a>`)
	})

	t.Run("results", func(t *testing.T) {
		results := Cards([]models.PostSummary{summary("search-1")}, "search", 0, "frontend")
		body := render(t, "search", &Page{Layout: LayoutWide, Search: &SearchPage{Query: "frontend", State: "results", Results: results}}).Body.String()
		assert.Contains(t, body, `href="/post/search-1"`)
		assert.Contains(t, body, `name="q" value="frontend"`)
	})
}

func TestRenderUnknownTemplate(t *testing.T) {
	tmpls, err := Load(plainMarkdown{})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	assert.Error(t, tmpls.Render(w, http.StatusOK, "missing", &Page{}))
	assert.Empty(t, w.Body.String())
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest("GET", "/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".card")
}
