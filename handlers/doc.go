// Package handlers serves the console's pages and JSON endpoints.
//
// Handlers receive their services through constructors and declare routes
// through console.Router:
//
//	console.WithHandlers(
//	    handlers.NewFormHandler(loader),
//	    handlers.NewDocTypeHandler(doctypes),
//	    handlers.NewStateHandler(),
//	)
package handlers
