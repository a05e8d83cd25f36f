package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/cookie"
)

const secret = "0123456789abcdef0123456789abcdef"

// replay copies Set-Cookie headers from a recorder into a new request.
func replay(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "prefs", []byte(`{"theme":"dark"}`), 0))

	got, err := m.Get(replay(t, rec), "prefs")
	require.NoError(t, err)
	require.Equal(t, `{"theme":"dark"}`, string(got))

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "prefs")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: "prefs", Value: "!!!"})
	_, err = m.Get(bad, "prefs")
	require.ErrorIs(t, err, cookie.ErrBadValue)
}

func TestManager_Attributes(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"), cookie.WithMaxAge(60))
	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "a", []byte("x"), 0))

	c := rec.Result().Cookies()[0]
	require.True(t, c.Secure)
	require.True(t, c.HttpOnly)
	require.Equal(t, "example.com", c.Domain)
	require.Equal(t, 60, c.MaxAge)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)

	rec = httptest.NewRecorder()
	m.Delete(rec, "a")
	require.Less(t, rec.Result().Cookies()[0].MaxAge, 0)
}

func TestManager_SizeLimit(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(secret))
	big := []byte(strings.Repeat("x", 3500))

	rec := httptest.NewRecorder()
	require.ErrorIs(t, m.Set(rec, "big", big, 0), cookie.ErrTooLarge)
	require.ErrorIs(t, m.SetSigned(rec, "big", big, 0), cookie.ErrTooLarge)
	require.Empty(t, rec.Result().Cookies())

	require.NoError(t, m.Set(rec, "small", big[:2000], 0))
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("requires secret", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret("short"))
		require.False(t, m.HasSecret())
		require.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "a", []byte("x"), 0), cookie.ErrNoSecret)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(secret))
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "session_values", []byte(`"v"`), 0))

		got, err := m.GetSigned(replay(t, rec), "session_values")
		require.NoError(t, err)
		require.Equal(t, `"v"`, string(got))
	})

	t.Run("rejects tampering and renamed cookies", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecret(secret))
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "a", []byte("value"), 0))
		orig := rec.Result().Cookies()[0]

		_, sig, _ := strings.Cut(orig.Value, ".")
		tampered := httptest.NewRequest(http.MethodGet, "/", nil)
		tampered.AddCookie(&http.Cookie{Name: "a", Value: "dmFsdWY." + sig})
		_, err := m.GetSigned(tampered, "a")
		require.ErrorIs(t, err, cookie.ErrBadSig)

		renamed := httptest.NewRequest(http.MethodGet, "/", nil)
		renamed.AddCookie(&http.Cookie{Name: "b", Value: orig.Value})
		_, err = m.GetSigned(renamed, "b")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})
}
