package doctype_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/doctype"
)

// call is one request observed by the fake API.
type call struct {
	method string
	path   string
	body   string
}

type fakeAPI struct {
	status int
	body   string

	mu    sync.Mutex
	calls []call
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, call{method: r.Method, path: r.URL.EscapedPath(), body: string(body)})
	f.mu.Unlock()

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func newService(t *testing.T, f *fakeAPI) *doctype.Service {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return doctype.NewService(apiclient.New(apiclient.WithBaseURL(srv.URL + "/api")))
}

func TestService_GetAll(t *testing.T) {
	t.Parallel()

	t.Run("preserves server order", func(t *testing.T) {
		t.Parallel()

		f := &fakeAPI{body: `[{"id":3,"name":"c"},{"id":1,"name":"a"},{"id":2,"name":"b"}]`}
		svc := newService(t, f)

		list, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, []string{"3", "1", "2"}, []string{list[0].ID(), list[1].ID(), list[2].ID()})
		require.Equal(t, "c", list[0].String("name"))

		require.Equal(t, []call{{method: http.MethodGet, path: "/api/doctypes"}}, f.recorded())
	})

	t.Run("propagates upstream status", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &fakeAPI{status: http.StatusServiceUnavailable})
		_, err := svc.GetAll(context.Background())
		code, ok := apiclient.StatusCode(err)
		require.True(t, ok)
		require.Equal(t, http.StatusServiceUnavailable, code)
	})
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	f := &fakeAPI{status: http.StatusCreated, body: `{"id":"dt_1","name":"Invoice","fields":["total"]}`}
	svc := newService(t, f)

	in, err := doctype.New(map[string]any{"name": "Invoice", "fields": []string{"total"}})
	require.NoError(t, err)

	out, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "dt_1", out.ID())

	got, err := json.Marshal(out)
	require.NoError(t, err)
	require.JSONEq(t, f.body, string(got), "response must be returned unchanged")

	calls := f.recorded()
	require.Len(t, calls, 1)
	require.Equal(t, http.MethodPost, calls[0].method)
	require.Equal(t, "/api/doctypes", calls[0].path)
	require.JSONEq(t, `{"name":"Invoice","fields":["total"]}`, calls[0].body)
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	t.Run("puts to the item path", func(t *testing.T) {
		t.Parallel()

		f := &fakeAPI{body: `{"id":"a b","name":"Renamed"}`}
		svc := newService(t, f)

		in, err := doctype.New(map[string]any{"name": "Renamed"})
		require.NoError(t, err)

		out, err := svc.Update(context.Background(), "a b", in)
		require.NoError(t, err)
		require.Equal(t, "Renamed", out.String("name"))

		calls := f.recorded()
		require.Len(t, calls, 1)
		require.Equal(t, http.MethodPut, calls[0].method)
		require.Equal(t, "/api/doctypes/a%20b", calls[0].path)
		require.JSONEq(t, `{"name":"Renamed"}`, calls[0].body)
	})

	t.Run("empty id makes no request", func(t *testing.T) {
		t.Parallel()

		f := &fakeAPI{}
		svc := newService(t, f)

		_, err := svc.Update(context.Background(), "", doctype.DocType{})
		require.ErrorIs(t, err, doctype.ErrEmptyID)
		require.Empty(t, f.recorded())
	})
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
	}{
		{name: "confirmation body", status: http.StatusOK, body: `{"deleted":true}`, wantBody: `{"deleted":true}`},
		{name: "no content", status: http.StatusNoContent, body: "", wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeAPI{status: tt.status, body: tt.body}
			svc := newService(t, f)

			out, err := svc.Delete(context.Background(), "7")
			require.NoError(t, err)
			require.Equal(t, tt.wantBody, string(out))
			require.Equal(t, []call{{method: http.MethodDelete, path: "/api/doctypes/7"}}, f.recorded())
		})
	}

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &fakeAPI{status: http.StatusNotFound, body: `{}`})
		_, err := svc.Delete(context.Background(), "7")
		require.ErrorIs(t, err, apiclient.ErrUnexpectedStatus)
	})
}
