// Package middlewares provides the console's request middleware: request IDs,
// panic recovery, request timeouts, access logging and per-browser session
// state.
//
// Errors produced here implement StatusCode() so the app's error handler can
// render them without knowing their types:
//
//	console.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.RequestLogger(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(10*time.Second),
//	    middlewares.State(middlewares.CookieState()),
//	)
package middlewares
