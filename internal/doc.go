// Package internal holds the console's HTTP application core: the App,
// its chi-backed Router, the per-request Context, error rendering and the
// server runtime with graceful shutdown. The root package re-exports the
// public surface.
package internal
