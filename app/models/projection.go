package models

import (
	"strings"
	"time"
	"unicode"
)

// ExcerptLimit is the maximum excerpt length in runes, ellipsis excluded.
const ExcerptLimit = 280

// PostSummary is the list view of a post: feed cards, most liked and search results.
type PostSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Image        string    `json:"image,omitempty"`
	Author       Author    `json:"author"`
	Tags         []string  `json:"tags"`
	Likes        int       `json:"likes"`
	Liked        bool      `json:"liked"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	DateLabel    string    `json:"date_label"`
}

// PostDetail is the full view of a post with its ordered comments.
type PostDetail struct {
	PostSummary
	Body     string    `json:"body"`
	Comments []Comment `json:"comments"`
}

// Summary projects p into its list view.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:           p.ID,
		Title:        p.Title,
		Excerpt:      Excerpt(p.Body, ExcerptLimit),
		Image:        p.Image,
		Author:       p.Author,
		Tags:         append([]string(nil), p.Tags...),
		Likes:        p.Likes,
		Liked:        p.Liked,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		DateLabel:    p.CreatedAt.Format(DateLayout),
	}
}

// Detail projects p into its detail view. Comments keep their stored order.
func (p *Post) Detail() PostDetail {
	comments := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, *c)
	}
	return PostDetail{
		PostSummary: p.Summary(),
		Body:        p.Body,
		Comments:    comments,
	}
}

// Summaries projects every post in order.
func Summaries(posts []*Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Summary())
	}
	return out
}

// Excerpt returns the first paragraph of body, cut at a word boundary
// when it is longer than limit runes.
func Excerpt(body string, limit int) string {
	body = strings.TrimSpace(body)
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	body = strings.Join(strings.Fields(body), " ")

	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	cut := limit
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = limit
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsPunct) + "…"
}

// AsAuthor returns the viewer as a byline. Anonymous viewers get fallback.
func (v *Viewer) AsAuthor(fallback Author) Author {
	if v == nil || strings.TrimSpace(v.Name) == "" {
		return fallback
	}
	return Author{Name: v.Name, Avatar: v.Avatar}
}
