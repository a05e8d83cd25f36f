// Package forms loads form records for the form edit page.
package forms

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/logger"
	"github.com/formdesk/console/pkg/record"
)

// Form is a server-defined fillable form. Only its id is interpreted.
type Form struct {
	record.Record
}

// Title returns the optional "title" member.
func (f Form) Title() string {
	return f.String("title")
}

// Description returns the optional "description" member (Markdown).
func (f Form) Description() string {
	return f.String("description")
}

// PageData is handed to the rendering layer on a successful load.
type PageData struct {
	Form Form `json:"form"`
}

// Policy decides which status a failed load reports.
type Policy int

const (
	// PreserveStatus reports the upstream status for non-2xx responses
	// and 500 for every other failure.
	PreserveStatus Policy = iota

	// AlwaysNotFound reports 404 for every failure.
	AlwaysNotFound
)

// ParsePolicy maps a config value to a Policy.
// "always_not_found" selects AlwaysNotFound; anything else PreserveStatus.
func ParsePolicy(s string) Policy {
	if s == "always_not_found" {
		return AlwaysNotFound
	}
	return PreserveStatus
}

func (p Policy) String() string {
	if p == AlwaysNotFound {
		return "always_not_found"
	}
	return "preserve_status"
}

// Option configures the Loader.
type Option func(*Loader)

// WithPolicy sets the error policy. Default: PreserveStatus.
func WithPolicy(p Policy) Option {
	return func(l *Loader) {
		l.policy = p
	}
}

// WithLogger sets the logger used to report failed loads.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// Loader fetches one form per call. There is no caching and no retry:
// two loads for the same id are two requests.
type Loader struct {
	api    *apiclient.Client
	logger *slog.Logger
	policy Policy
}

// NewLoader creates a Loader on top of the shared API client.
func NewLoader(api *apiclient.Client, opts ...Option) *Loader {
	l := &Loader{
		api:    api,
		logger: logger.NewNope(),
		policy: PreserveStatus,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the configured error policy.
func (l *Loader) Policy() Policy {
	return l.policy
}

// Load fetches the form with the given id.
// Failures are returned as *LoadError.
func (l *Loader) Load(ctx context.Context, id string) (*PageData, error) {
	if id == "" {
		return nil, &LoadError{Code: http.StatusNotFound, Message: MessageLoadFailed}
	}

	var form Form
	if err := l.api.Get(ctx, "/forms/"+url.PathEscape(id), &form); err != nil {
		lerr := l.mapError(err)
		l.logger.ErrorContext(ctx, "error loading form",
			slog.String("form_id", id),
			slog.Int("status", lerr.Code),
			slog.String("error", err.Error()),
		)
		return nil, lerr
	}

	return &PageData{Form: form}, nil
}

func (l *Loader) mapError(err error) *LoadError {
	if l.policy == AlwaysNotFound {
		return &LoadError{Code: http.StatusNotFound, Message: MessageLoadFailed, Err: err}
	}
	if code, ok := apiclient.StatusCode(err); ok {
		return &LoadError{Code: code, Message: MessageLoadFailed, Err: err}
	}
	return &LoadError{Code: http.StatusInternalServerError, Message: MessageInternal, Err: err}
}
