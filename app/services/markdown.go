package services

import (
	"bytes"
	"fmt"
	"html/template"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/crypto/sha3"
)

// Renderer turns markdown post bodies into sanitized HTML.
// Results are cached by a digest of the source.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *lru.Cache[[32]byte, template.HTML]
}

// NewRenderer creates a Renderer caching up to size bodies.
func NewRenderer(size int) (*Renderer, error) {
	cache, err := lru.New[[32]byte, template.HTML](size)
	if err != nil {
		return nil, fmt.Errorf("create render cache: %w", err)
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
		cache:  cache,
	}, nil
}

// Render returns body as HTML. A body goldmark cannot convert is
// returned escaped.
func (r *Renderer) Render(body string) template.HTML {
	key := sha3.Sum256([]byte(body))
	if html, ok := r.cache.Get(key); ok {
		return html
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(body))
	}
	html := template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
	r.cache.Add(key, html)
	return html
}

// Len reports how many rendered bodies are cached.
func (r *Renderer) Len() int {
	return r.cache.Len()
}
