package state

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/formdesk/console/pkg/cookie"
)

// CookieBackend stores slot values in the visiting browser's cookies,
// the server-side equivalent of the browser's local storage.
// It is scoped to one request: Load reads the request cookies, Save writes
// Set-Cookie headers and shadows the request value for later loads.
// Values are signed when the manager has a secret. Cookies outlive the
// browser session; each Save restarts their lifetime.
type CookieBackend struct {
	req     *http.Request
	w       http.ResponseWriter
	cookies *cookie.Manager
	written map[string][]byte
	maxAge  time.Duration
	mu      sync.Mutex
}

// DefaultCookieMaxAge is the lifetime of a saved value cookie.
const DefaultCookieMaxAge = 30 * 24 * time.Hour

// CookieOption configures a CookieBackend.
type CookieOption func(*CookieBackend)

// WithCookieMaxAge sets how long the browser keeps saved values.
// Durations under one second keep DefaultCookieMaxAge.
func WithCookieMaxAge(d time.Duration) CookieOption {
	return func(b *CookieBackend) {
		if d >= time.Second {
			b.maxAge = d
		}
	}
}

// NewCookieBackend creates a backend for one request/response pair.
func NewCookieBackend(r *http.Request, w http.ResponseWriter, cookies *cookie.Manager, opts ...CookieOption) *CookieBackend {
	b := &CookieBackend{
		req:     r,
		w:       w,
		cookies: cookies,
		written: make(map[string][]byte),
		maxAge:  DefaultCookieMaxAge,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *CookieBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	if v, ok := b.written[key]; ok {
		b.mu.Unlock()
		return append([]byte(nil), v...), nil
	}
	b.mu.Unlock()

	var (
		data []byte
		err  error
	)
	if b.cookies.HasSecret() {
		data, err = b.cookies.GetSigned(b.req, key)
	} else {
		data, err = b.cookies.Get(b.req, key)
	}
	if errors.Is(err, cookie.ErrNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

// Save returns ErrTooLarge when the encoded value would not fit in a cookie.
func (b *CookieBackend) Save(_ context.Context, key string, data []byte) error {
	maxAge := int(b.maxAge / time.Second)
	var err error
	if b.cookies.HasSecret() {
		err = b.cookies.SetSigned(b.w, key, data, maxAge)
	} else {
		err = b.cookies.Set(b.w, key, data, maxAge)
	}
	if errors.Is(err, cookie.ErrTooLarge) {
		return errors.Join(ErrTooLarge, err)
	}
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.written[key] = append([]byte(nil), data...)
	b.mu.Unlock()
	return nil
}

var _ Backend = (*CookieBackend)(nil)
