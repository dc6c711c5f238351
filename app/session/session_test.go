package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-session-secret-for-tests"

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestNewStore(t *testing.T) {
	_, err := NewStore("short")
	assert.Error(t, err)

	_, err = NewStore(testSecret)
	assert.NoError(t, err)
}

func TestLoginLogout(t *testing.T) {
	store, err := NewStore(testSecret)
	require.NoError(t, err)

	t.Run("anonymous", func(t *testing.T) {
		assert.Nil(t, store.Viewer(httptest.NewRequest("GET", "/", nil)))
	})

	w := httptest.NewRecorder()
	viewer, err := store.Login(w, httptest.NewRequest("POST", "/login", nil), "  Clarissa ", "/static/image-6.png")
	require.NoError(t, err)
	assert.Equal(t, "Clarissa", viewer.Name)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	t.Run("viewer from cookie", func(t *testing.T) {
		got := store.Viewer(requestWithCookies(cookies))
		require.NotNil(t, got)
		assert.Equal(t, "Clarissa", got.Name)
		assert.Equal(t, "/static/image-6.png", got.Avatar)
	})

	t.Run("other secret cannot read the cookie", func(t *testing.T) {
		other, err := NewStore("another-secret-for-tests")
		require.NoError(t, err)
		assert.Nil(t, other.Viewer(requestWithCookies(cookies)))
	})

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		tampered := *cookies[0]
		tampered.Value = strings.ToUpper(tampered.Value)
		assert.Nil(t, store.Viewer(requestWithCookies([]*http.Cookie{&tampered})))
	})

	t.Run("logout", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, store.Logout(w, requestWithCookies(cookies)))
		cleared := w.Result().Cookies()
		require.NotEmpty(t, cleared)
		assert.True(t, cleared[0].MaxAge < 0)
	})
}

func TestLoginRejectsBadNames(t *testing.T) {
	store, err := NewStore(testSecret)
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "x", strings.Repeat("n", 51)} {
		_, err := store.Login(httptest.NewRecorder(), httptest.NewRequest("POST", "/login", nil), name, "")
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}
