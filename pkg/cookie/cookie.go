package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// Errors.
var (
	ErrNotFound = errors.New("cookie: not found")
	ErrNoSecret = errors.New("cookie: secret required")
	ErrBadSig   = errors.New("cookie: invalid signature")
	ErrBadValue = errors.New("cookie: malformed value")
	ErrTooLarge = errors.New("cookie: exceeds browser size limit")
)

// MaxSize is the largest serialized cookie browsers are required to keep.
// Larger cookies are dropped silently, so Set and SetSigned refuse them.
const MaxSize = 4096

// MinSecretLen is the shortest secret WithSecret accepts.
const MinSecretLen = 32

// Manager applies the same attributes to every cookie it writes.
type Manager struct {
	secret   []byte
	domain   string
	path     string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. Defaults: path "/", HttpOnly, SameSite=Lax, session lifetime.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret enables signing. Secrets shorter than MinSecretLen are ignored.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= MinSecretLen {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the Domain attribute.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the Path attribute.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure attribute.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithMaxAge sets the default lifetime in seconds for Set calls with maxAge 0.
func WithMaxAge(seconds int) Option {
	return func(m *Manager) {
		m.maxAge = seconds
	}
}

// HasSecret reports whether signed cookies are available.
func (m *Manager) HasSecret() bool {
	return m.secret != nil
}

// Get returns the decoded value of a cookie written by Set.
func (m *Manager) Get(r *http.Request, name string) ([]byte, error) {
	raw, err := m.raw(r, name)
	if err != nil {
		return nil, err
	}
	value, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrBadValue
	}
	return value, nil
}

// Set writes value under name. A maxAge of 0 uses the manager default.
// Returns ErrTooLarge without writing if the cookie exceeds MaxSize.
func (m *Manager) Set(w http.ResponseWriter, name string, value []byte, maxAge int) error {
	return m.write(w, m.cookie(name, base64.RawURLEncoding.EncodeToString(value), maxAge))
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetSigned returns the value of a cookie written by SetSigned.
// Returns ErrBadSig if the value was altered.
func (m *Manager) GetSigned(r *http.Request, name string) ([]byte, error) {
	if m.secret == nil {
		return nil, ErrNoSecret
	}
	raw, err := m.raw(r, name)
	if err != nil {
		return nil, err
	}

	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return nil, ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return nil, ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return nil, ErrBadSig
	}
	if !hmac.Equal(sig, m.sign(name, value)) {
		return nil, ErrBadSig
	}
	return value, nil
}

// SetSigned writes value with an HMAC bound to the cookie name.
func (m *Manager) SetSigned(w http.ResponseWriter, name string, value []byte, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	encoded := base64.RawURLEncoding.EncodeToString(value) + "." +
		base64.RawURLEncoding.EncodeToString(m.sign(name, value))
	return m.write(w, m.cookie(name, encoded, maxAge))
}

func (m *Manager) write(w http.ResponseWriter, c *http.Cookie) error {
	if len(c.String()) > MaxSize {
		return ErrTooLarge
	}
	http.SetCookie(w, c)
	return nil
}

func (m *Manager) raw(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// sign binds the MAC to the cookie name so a value cannot be replayed under another name.
func (m *Manager) sign(name string, value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write(value)
	return mac.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	if maxAge == 0 {
		maxAge = m.maxAge
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
