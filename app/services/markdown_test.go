package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	r, err := NewRenderer(2)
	require.NoError(t, err)

	t.Run("renders markdown", func(t *testing.T) {
		html := string(r.Render("### 1. High Demand\n\nSome **bold** text."))
		assert.Contains(t, html, "<h3")
		assert.Contains(t, html, "<strong>bold</strong>")
		assert.Contains(t, html, "<p>")
	})

	t.Run("sanitizes scripts", func(t *testing.T) {
		html := string(r.Render("hello <script>alert(1)</script>"))
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "hello")
	})

	t.Run("caches by content", func(t *testing.T) {
		first := r.Render("cached body")
		second := r.Render("cached body")
		assert.Equal(t, first, second)
		assert.LessOrEqual(t, r.Len(), 2)
	})

	t.Run("links open safely", func(t *testing.T) {
		html := string(r.Render("[site](https://example.com)"))
		assert.True(t, strings.Contains(html, `target="_blank"`))
		assert.Contains(t, html, "noreferrer")
	})

	_, err = NewRenderer(0)
	assert.Error(t, err)
}
