// Package session keeps the viewer identity in a signed and encrypted cookie.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hackblog/app/models"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "hackblog_session"

	keyName   = "viewer_name"
	keyAvatar = "viewer_avatar"

	maxAge = 30 * 24 * 60 * 60
)

// ErrInvalidName is returned by Login for a blank or oversized name.
var ErrInvalidName = errors.New("viewer name must be 2 to 50 characters")

// Store reads and writes the viewer of a request.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore derives the cookie hash and block keys from secret.
func NewStore(secret string) (*Store, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("session secret too short: %d bytes", len(secret))
	}
	kdf := hkdf.New(sha256.New, []byte(secret), []byte(CookieName), []byte("cookie keys"))
	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, fmt.Errorf("derive hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, fmt.Errorf("derive block key: %w", err)
	}

	cookies := sessions.NewCookieStore(hashKey, blockKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cookies}, nil
}

// Viewer returns the logged in viewer, or nil for an anonymous request.
// A cookie that fails to decode counts as anonymous.
func (s *Store) Viewer(r *http.Request) *models.Viewer {
	sess, err := s.cookies.Get(r, CookieName)
	if err != nil {
		return nil
	}
	name, _ := sess.Values[keyName].(string)
	if name == "" {
		return nil
	}
	avatar, _ := sess.Values[keyAvatar].(string)
	return &models.Viewer{Name: name, Avatar: avatar}
}

// Login stores name as the viewer of the session.
func (s *Store) Login(w http.ResponseWriter, r *http.Request, name, avatar string) (*models.Viewer, error) {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < 2 || n > 50 {
		return nil, ErrInvalidName
	}
	sess, _ := s.cookies.Get(r, CookieName)
	sess.Values[keyName] = name
	sess.Values[keyAvatar] = avatar
	if err := sess.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &models.Viewer{Name: name, Avatar: avatar}, nil
}

// Logout drops the session cookie.
func (s *Store) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, CookieName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
