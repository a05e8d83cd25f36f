package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/formdesk/console/internal"
)

type routeFunc func(r internal.Router)

func (f routeFunc) Routes(r internal.Router) { f(r) }

// serve runs req through an app with the given middleware in front of h.
func serve(req *http.Request, h internal.HandlerFunc, opts []internal.Option, mw ...internal.Middleware) *httptest.ResponseRecorder {
	opts = append(opts,
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routeFunc(func(r internal.Router) {
			r.GET("/*", h)
			r.PUT("/*", h)
		})),
	)
	rec := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(rec, req)
	return rec
}
