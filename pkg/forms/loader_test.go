package forms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/forms"
)

func newUpstream(t *testing.T, status int, body string, hits *atomic.Int32) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path == "/api/forms/42" || status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func requireLoadError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var lerr *forms.LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, code, lerr.StatusCode())
	require.Equal(t, msg, lerr.Message)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("success returns page data", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		base := newUpstream(t, http.StatusOK, `{"id":"42","title":"Intake"}`, &hits)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		data, err := l.Load(context.Background(), "42")
		require.NoError(t, err)
		require.Equal(t, "42", data.Form.ID())
		require.Equal(t, "Intake", data.Form.Title())
		require.Equal(t, int32(1), hits.Load())
	})

	t.Run("upstream 404 is preserved", func(t *testing.T) {
		t.Parallel()

		base := newUpstream(t, http.StatusNotFound, `{"detail":"missing"}`, nil)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		_, err := l.Load(context.Background(), "missing")
		requireLoadError(t, err, http.StatusNotFound, forms.MessageLoadFailed)
		require.ErrorIs(t, err, apiclient.ErrUnexpectedStatus)
	})

	t.Run("upstream 503 is preserved", func(t *testing.T) {
		t.Parallel()

		base := newUpstream(t, http.StatusServiceUnavailable, ``, nil)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		_, err := l.Load(context.Background(), "42")
		requireLoadError(t, err, http.StatusServiceUnavailable, forms.MessageLoadFailed)
	})

	t.Run("transport failure maps to 500", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))
		_, err := l.Load(context.Background(), "42")
		requireLoadError(t, err, http.StatusInternalServerError, forms.MessageInternal)
		require.ErrorIs(t, err, apiclient.ErrTransport)
	})

	t.Run("malformed body maps to 500", func(t *testing.T) {
		t.Parallel()

		base := newUpstream(t, http.StatusOK, `[1,2,3]`, nil)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		_, err := l.Load(context.Background(), "42")
		requireLoadError(t, err, http.StatusInternalServerError, forms.MessageInternal)
	})

	t.Run("empty id is not found without a request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		base := newUpstream(t, http.StatusOK, `{}`, &hits)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		_, err := l.Load(context.Background(), "")
		requireLoadError(t, err, http.StatusNotFound, forms.MessageLoadFailed)
		require.Zero(t, hits.Load())
	})

	t.Run("no deduplication between loads", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		base := newUpstream(t, http.StatusOK, `{"id":"42"}`, &hits)
		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)))

		for range 2 {
			_, err := l.Load(context.Background(), "42")
			require.NoError(t, err)
		}
		require.Equal(t, int32(2), hits.Load())
	})
}

func TestLoader_AlwaysNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "upstream 500", status: http.StatusInternalServerError},
		{name: "upstream 403", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := newUpstream(t, tt.status, ``, nil)
			l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)), forms.WithPolicy(forms.AlwaysNotFound))

			_, err := l.Load(context.Background(), "42")
			requireLoadError(t, err, http.StatusNotFound, forms.MessageLoadFailed)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		l := forms.NewLoader(apiclient.New(apiclient.WithBaseURL(base)), forms.WithPolicy(forms.AlwaysNotFound))
		_, err := l.Load(context.Background(), "42")
		requireLoadError(t, err, http.StatusNotFound, forms.MessageLoadFailed)
	})
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	require.Equal(t, forms.AlwaysNotFound, forms.ParsePolicy("always_not_found"))
	require.Equal(t, forms.PreserveStatus, forms.ParsePolicy("preserve_status"))
	require.Equal(t, forms.PreserveStatus, forms.ParsePolicy(""))
	require.Equal(t, "always_not_found", forms.AlwaysNotFound.String())

	api := apiclient.New()
	require.Equal(t, forms.PreserveStatus, forms.NewLoader(api).Policy())
	require.Equal(t, forms.AlwaysNotFound, forms.NewLoader(api, forms.WithPolicy(forms.ParsePolicy("always_not_found"))).Policy())
}
