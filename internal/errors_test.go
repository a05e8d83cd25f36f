package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/internal"
)

type coded struct{ code int }

func (c coded) Error() string   { return "coded failure" }
func (c coded) StatusCode() int { return c.code }

type public struct{ coded }

func (p public) PublicMessage() string { return "shown" }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()

		he := internal.ErrNotFound("no such doctype")
		got := internal.AsHTTPError(fmt.Errorf("outer: %w", he))
		require.Same(t, he, got)
	})

	t.Run("status coder keeps code but hides message", func(t *testing.T) {
		t.Parallel()

		got := internal.AsHTTPError(coded{code: http.StatusServiceUnavailable})
		require.Equal(t, http.StatusServiceUnavailable, got.Code)
		require.Equal(t, "Service Unavailable", got.Message)
	})

	t.Run("public message is shown", func(t *testing.T) {
		t.Parallel()

		got := internal.AsHTTPError(fmt.Errorf("wrap: %w", public{coded{code: http.StatusNotFound}}))
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "shown", got.Message)
	})

	t.Run("plain error becomes 500", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		got := internal.AsHTTPError(cause)
		require.Equal(t, http.StatusInternalServerError, got.Code)
		require.Equal(t, "Internal Server Error", got.Message)
		require.ErrorIs(t, got, cause)
	})
}

func TestHTTPError_Constructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("upstream down")
	he := internal.ErrBadGateway("Upstream error").WithCause(cause)
	require.Equal(t, http.StatusBadGateway, he.StatusCode())
	require.Equal(t, "Bad Gateway", he.StatusText())
	require.ErrorIs(t, he, cause)

	require.Equal(t, http.StatusBadRequest, internal.ErrBadRequest("x").Code)
	require.Equal(t, http.StatusInternalServerError, internal.ErrInternal("x").Code)
}
