// Package console is the form-builder admin console: server-rendered pages
// for editing forms and managing document types against a remote JSON API,
// plus per-browser session state.
//
// The root package exposes the application framework used by handlers and
// middlewares. Domain logic lives under pkg/, HTTP handlers under handlers/
// and the binary under cmd/console.
//
//	app := console.New(
//	    console.WithLogger(log),
//	    console.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    console.WithHandlers(handlers.NewDocTypeHandler(doctypes)),
//	    console.WithHealthChecks(console.WithReadinessCheck("api", apiclient.Healthcheck(api))),
//	)
//	err := app.Run(cfg.Address, console.Logger(log))
package console
