package internal

// Handler declares routes on a router.
//
//	func (h *DocTypeHandler) Routes(r console.Router) {
//	    r.GET("/doctypes", h.list)
//	    r.POST("/doctypes", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands the request to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
