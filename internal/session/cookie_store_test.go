package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoCookies_GetSetDelete(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	req.AddCookie(&http.Cookie{Name: "empty", Value: ""})
	rec := httptest.NewRecorder()
	store := NewEchoCookies(e.NewContext(req, rec))

	v, ok := store.Get("session")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = store.Get("empty")
	assert.False(t, ok)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Set(&http.Cookie{Name: "organization", Value: "acme", Path: "/"})
	store.Delete(&http.Cookie{Name: "session", Path: "/", HttpOnly: true, Secure: true, SameSite: http.SameSiteStrictMode})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "organization", cookies[0].Name)
	assert.Equal(t, "acme", cookies[0].Value)
	assert.Equal(t, "session", cookies[1].Name)
	assert.Equal(t, "", cookies[1].Value)
	assert.Equal(t, -1, cookies[1].MaxAge)
	assert.Equal(t, "/", cookies[1].Path)
	assert.True(t, cookies[1].HttpOnly)
	assert.True(t, cookies[1].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[1].SameSite)
}
