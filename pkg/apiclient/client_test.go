package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/apiclient"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := apiclient.New()
	require.Equal(t, "http://localhost:8000/api", c.BaseURL())
	require.Equal(t, "http://localhost:8000/api/doctypes", c.URL("/doctypes"))
	require.Equal(t, "http://localhost:8000/api/forms/1", c.URL("forms/1"))

	c = apiclient.New(apiclient.WithBaseURL("http://api.test/v1/"))
	require.Equal(t, "http://api.test/v1", c.BaseURL())
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("sends default headers and JSON body", func(t *testing.T) {
		t.Parallel()

		type seen struct {
			method, path, contentType string
			body                      []byte
		}
		got := make(chan seen, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			got <- seen{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL + "/api"))

		var out map[string]bool
		err := c.Post(context.Background(), "/things", map[string]string{"name": "x"}, &out)
		require.NoError(t, err)
		req := <-got
		require.Equal(t, http.MethodPost, req.method)
		require.Equal(t, "/api/things", req.path)
		require.Equal(t, "application/json", req.contentType)
		require.JSONEq(t, `{"name":"x"}`, string(req.body))
		require.True(t, out["ok"])
	})

	t.Run("custom header overrides default", func(t *testing.T) {
		t.Parallel()

		got := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got <- r.Header.Get("X-Tenant")
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL), apiclient.WithHeader("X-Tenant", "acme"))
		require.NoError(t, c.Get(context.Background(), "/", nil))
		require.Equal(t, "acme", <-got)
	})

	t.Run("non-2xx returns StatusError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"nope"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL))
		err := c.Get(context.Background(), "/missing", nil)
		require.ErrorIs(t, err, apiclient.ErrUnexpectedStatus)

		code, ok := apiclient.StatusCode(err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, code)

		var se *apiclient.StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "/missing", se.Path)
		require.Contains(t, string(se.Body), "nope")
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(url))
		err := c.Get(context.Background(), "/x", nil)
		require.ErrorIs(t, err, apiclient.ErrTransport)

		_, ok := apiclient.StatusCode(err)
		require.False(t, ok)
	})

	t.Run("invalid JSON on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL))
		var out map[string]any
		require.ErrorIs(t, c.Get(context.Background(), "/", &out), apiclient.ErrDecodeFailed)
	})

	t.Run("empty body leaves out untouched", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL))
		out := map[string]any{"keep": true}
		require.NoError(t, c.Delete(context.Background(), "/x", &out))
		require.Equal(t, map[string]any{"keep": true}, out)
	})

	t.Run("raw message receives body verbatim", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"deleted": 1}`))
		}))
		defer srv.Close()

		c := apiclient.New(apiclient.WithBaseURL(srv.URL))
		var raw json.RawMessage
		require.NoError(t, c.Delete(context.Background(), "/x", &raw))
		require.Equal(t, `{"deleted": 1}`, string(raw))
	})

	t.Run("timeout surfaces as transport failure", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		c := apiclient.New(apiclient.WithBaseURL(srv.URL), apiclient.WithTimeout(20*time.Millisecond))
		require.ErrorIs(t, c.Get(context.Background(), "/slow", nil), apiclient.ErrTransport)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	require.NoError(t, apiclient.Healthcheck(apiclient.New(apiclient.WithBaseURL(srv.URL)))(context.Background()))

	url := srv.URL
	srv.Close()
	require.Error(t, apiclient.Healthcheck(apiclient.New(apiclient.WithBaseURL(url)))(context.Background()))
}
