// Package views renders the HTML pages of the blog from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"hackblog/app/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Layouts a page can be rendered in.
const (
	LayoutWide   = "wide"
	LayoutNarrow = "narrow"
)

// Markdown turns a post body into safe HTML.
type Markdown interface {
	Render(body string) template.HTML
}

// Page is the data every template receives. Only the field of the
// rendered view is set.
type Page struct {
	Title  string
	Layout string
	Viewer *models.Viewer
	Query  string
	Error  string

	Feed   *FeedPage
	Post   *PostPage
	Search *SearchPage
}

// Card is a post summary with the state its like form posts back.
type Card struct {
	Post  models.PostSummary
	From  string
	Page  int
	Query string
}

type FeedPage struct {
	Posts      []Card
	MostLiked  []Card
	Page       int
	TotalPages int
	Pages      []int
	HasPrev    bool
	HasNext    bool
}

func (f *FeedPage) Prev() int { return f.Page - 1 }
func (f *FeedPage) Next() int { return f.Page + 1 }

type PostPage struct {
	Post       models.PostDetail
	Inline     []models.Comment
	HasMore    bool
	ModalOpen  bool
	Input      string
	ModalInput string
}

type SearchPage struct {
	Query   string
	State   string
	Results []Card
}

// Cards wraps summaries for a like form posting back to from.
func Cards(summaries []models.PostSummary, from string, page int, query string) []Card {
	cards := make([]Card, 0, len(summaries))
	for _, s := range summaries {
		cards = append(cards, Card{Post: s, From: from, Page: page, Query: query})
	}
	return cards
}

// Templates holds one parsed template set per page.
type Templates struct {
	pages map[string]*template.Template
}

var pageFiles = map[string][]string{
	"feed":      {"templates/card.html", "templates/feed.html"},
	"post":      {"templates/post.html"},
	"not_found": {"templates/not_found.html"},
	"search":    {"templates/card.html", "templates/search.html"},
	"login":     {"templates/login.html"},
}

// Load parses the embedded templates. Post bodies are rendered with md.
func Load(md Markdown) (*Templates, error) {
	funcs := template.FuncMap{
		"markdown": md.Render,
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, files := range pageFiles {
		patterns := append([]string{"templates/layout.html"}, files...)
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFiles, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Templates{pages: pages}, nil
}

// Render writes page name with status. Nothing is written when the
// template fails.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, page *Page) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.Copy(w, &buf)
	return err
}

// Static serves the embedded stylesheet and images.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
