package middlewares

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/formdesk/console/internal"
	"github.com/formdesk/console/pkg/state"
)

// BrowserIDCookie names the cookie that keys server-side state per browser.
const BrowserIDCookie = "console_browser"

// StateBackend picks the state backend for one request.
// A nil backend means values live only for the request.
type StateBackend func(c internal.Context) (state.Backend, error)

// BrowserIDMaxAge is the browser id lifetime when Redis values never expire.
// Browsers cap cookie lifetimes near this value.
const BrowserIDMaxAge = 400 * 24 * time.Hour

// CookieState keeps slot values in the browser's own cookies.
func CookieState(opts ...state.CookieOption) StateBackend {
	return func(c internal.Context) (state.Backend, error) {
		return state.NewCookieBackend(c.Request(), c.Response(), c.Cookies(), opts...), nil
	}
}

// RedisState keeps slot values in Redis under a per-browser namespace.
// The namespace is a UUID held in BrowserIDCookie, issued on first visit and
// refreshed on every request for as long as the stored values live.
func RedisState(b *state.RedisBackend) StateBackend {
	lifetime := b.TTL()
	if lifetime <= 0 {
		lifetime = BrowserIDMaxAge
	}
	return func(c internal.Context) (state.Backend, error) {
		return b.Namespace(browserID(c, lifetime)), nil
	}
}

// NoState opens every slot empty and keeps writes in memory.
func NoState() StateBackend {
	return func(internal.Context) (state.Backend, error) {
		return nil, nil
	}
}

func browserID(c internal.Context, lifetime time.Duration) string {
	cookies := c.Cookies()
	read := cookies.Get
	if cookies.HasSecret() {
		read = cookies.GetSigned
	}

	id := ""
	if raw, err := read(c.Request(), BrowserIDCookie); err == nil {
		if parsed, err := uuid.ParseBytes(raw); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	maxAge := int(lifetime / time.Second)
	var err error
	if cookies.HasSecret() {
		err = cookies.SetSigned(c.Response(), BrowserIDCookie, []byte(id), maxAge)
	} else {
		err = cookies.Set(c.Response(), BrowserIDCookie, []byte(id), maxAge)
	}
	if err != nil {
		c.LogWarn("failed to set browser id cookie", "error", err)
	}
	return id
}

// State opens the session Store for each request and attaches it to the
// request context, where handlers find it with GetStore.
func State(backend StateBackend, opts ...state.Option) internal.Middleware {
	if backend == nil {
		backend = NoState()
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			b, err := backend(c)
			if err != nil {
				return errors.Join(internal.ErrInternal("session state unavailable"), err)
			}

			st, err := state.NewStore(c.Context(), b, append([]state.Option{state.WithLogger(c.Logger())}, opts...)...)
			if err != nil {
				return errors.Join(internal.ErrInternal("session state unavailable"), err)
			}
			c.SetContext(state.WithStore(c.Context(), st))
			return next(c)
		}
	}
}

// GetStore returns the request's Store, or nil if State is not installed.
func GetStore(c internal.Context) *state.Store {
	return state.FromContext(c.Context())
}
