package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hackblog/app/models"
)

const (
	// FeedSize is the number of posts on every feed page.
	FeedSize = 5
	// MostLikedSize is the number of posts in the most liked list.
	MostLikedSize = 3
	// TotalPages is the page count the mock feed reports.
	TotalPages = 3
	// SearchToken is the only term the mock search matches.
	SearchToken = "frontend"
)

const (
	mockTitle   = "5 Reasons to Learn Frontend Development in 2025"
	mockExcerpt = "Frontend development is more than just building beautiful user interfaces — it's about crafting user experiences that are fast, accessible, and intuitive. As we move into 2025, the demand for skilled frontend developers continues to rise."
	mockImage   = "/static/image-5.png"
	mockAvatar  = "/static/image-6.png"
	mockLikes   = 20
	mockTally   = 20
)

const mockArticle = mockExcerpt + `

Here are 5 reasons why you should start learning frontend development today:

### 1. High Demand in the Tech Industry

Tech companies, startups, and even traditional businesses are constantly looking for frontend developers to help them deliver high-quality digital experiences.

### 2. Powerful and Beginner-Friendly Tools

Modern frameworks like React, Vue, and Svelte make it easier than ever to build interactive UIs. Their growing ecosystems and active communities mean you'll find support at every step.

### 3. Creative Freedom

Frontend development allows you to bring your design ideas to life. From animations to responsive layouts, your creativity directly impacts how users engage with a product.

### 4. Attractive Career Opportunities

With roles like UI Developer, React Developer, and Frontend Engineer, you'll find plenty of opportunities with competitive salaries and growth potential.

### 5. Essential for Fullstack Development

Understanding frontend is crucial if you want to become a fullstack developer. It complements your backend knowledge and enables you to build complete applications.

If you're interested in building things that users interact with daily, frontend development is the path to take. Whether you're a designer learning to code or a backend developer exploring the frontend, 2025 is the perfect year to start.`

var (
	mockAuthor    = models.Author{ID: "author-1", Name: "John Doe", Avatar: mockAvatar}
	mockCreatedAt = time.Date(2025, time.May, 27, 0, 0, 0, 0, time.UTC)
	mockTags      = []string{"Programming", "Frontend", "Coding"}
)

var mockComments = []struct {
	author, content string
}{
	{"Clarissa", "This is super insightful — thanks for sharing!"},
	{"Marco", "Exactly what I needed to read today. Frontend is evolving so fast!"},
	{"Michael Sailor", "Great breakdown! You made complex ideas sound simple."},
	{"Jessica Jane", "As a beginner in frontend, this motivates me a lot. Appreciate it!"},
	{"Alexandra", "Well-written and straight to the point. Keep posting content like this!"},
}

// Mock is a Source that serves canned posts after a nominal delay.
// It never fails except when ctx is done or a post id is blank or too long.
type Mock struct {
	Delay time.Duration
}

// NewMock returns a Mock that waits delay before every answer.
func NewMock(delay time.Duration) *Mock {
	return &Mock{Delay: delay}
}

// GetFeed returns the same five posts for every page.
func (m *Mock) GetFeed(ctx context.Context, page int) (*FeedPage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	posts := make([]*models.Post, 0, FeedSize)
	for i := 1; i <= FeedSize; i++ {
		posts = append(posts, summaryPost(fmt.Sprintf("post-%d", i), mockImage))
	}
	return &FeedPage{Posts: posts, TotalPages: TotalPages}, nil
}

func (m *Mock) GetMostLiked(ctx context.Context) ([]*models.Post, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	posts := make([]*models.Post, 0, MostLikedSize)
	for i := 1; i <= MostLikedSize; i++ {
		posts = append(posts, summaryPost(fmt.Sprintf("liked-%d", i), ""))
	}
	return posts, nil
}

// GetPost synthesizes the full article under the requested id.
func (m *Mock) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" || len(id) > models.MaxIDLength {
		return nil, ErrNotFound
	}

	post := summaryPost(id, mockImage)
	post.Body = mockArticle
	post.CommentsLoaded = true
	commented := time.Date(2025, time.March, 27, 0, 0, 0, 0, time.UTC)
	for i, c := range mockComments {
		post.Comments = append(post.Comments, &models.Comment{
			ID:        fmt.Sprintf("comment-%d", i+1),
			PostID:    id,
			Author:    models.Author{Name: c.author, Avatar: mockAvatar},
			Content:   c.content,
			Date:      commented.Format(models.DateLayout),
			CreatedAt: commented,
		})
	}
	post.CommentCount = len(post.Comments)
	return post, nil
}

// Search matches query case-insensitively against SearchToken.
func (m *Mock) Search(ctx context.Context, query string) ([]*models.Post, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if !strings.Contains(strings.ToLower(query), SearchToken) {
		return []*models.Post{}, nil
	}
	return []*models.Post{summaryPost("search-1", mockImage)}, nil
}

// PostComment accepts every comment; the mock keeps nothing.
func (m *Mock) PostComment(ctx context.Context, postID string, comment *models.Comment) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	if comment == nil {
		return fmt.Errorf("post comment on %s: comment cannot be nil", postID)
	}
	return nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func summaryPost(id, image string) *models.Post {
	return &models.Post{
		ID:           id,
		Title:        mockTitle,
		Body:         mockExcerpt,
		Image:        image,
		Author:       mockAuthor,
		Tags:         append([]string(nil), mockTags...),
		Likes:        mockLikes,
		CommentCount: mockTally,
		CreatedAt:    mockCreatedAt,
	}
}
