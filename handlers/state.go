package handlers

import (
	"errors"
	"net/http"

	"github.com/formdesk/console"
	"github.com/formdesk/console/pkg/state"
)

// StateHandler exposes the two session slots as JSON.
type StateHandler struct{}

// NewStateHandler creates a StateHandler. It expects the State middleware.
func NewStateHandler() *StateHandler {
	return &StateHandler{}
}

// Routes implements console.Handler.
func (h *StateHandler) Routes(r console.Router) {
	r.GET("/state/{slot}", h.get)
	r.PUT("/state/{slot}", h.put)
}

type slotBody struct {
	Value      any    `json:"value"`
	Key        string `json:"key"`
	Persistent bool   `json:"persistent"`
}

func (h *StateHandler) get(c console.Context) error {
	s, err := slotFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slotBody{Key: s.Key(), Value: s.Get(), Persistent: s.Persistent()})
}

func (h *StateHandler) put(c console.Context) error {
	s, err := slotFor(c)
	if err != nil {
		return err
	}

	var v any
	if err := c.BindJSON(&v); err != nil {
		return console.ErrBadRequest("Invalid JSON body").WithCause(err)
	}

	if err := s.Set(c.Context(), v); err != nil {
		if errors.Is(err, state.ErrMarshal) {
			return console.ErrBadRequest("Value cannot be stored").WithCause(err)
		}
		if errors.Is(err, state.ErrTooLarge) {
			return console.NewHTTPError(http.StatusRequestEntityTooLarge, "Value too large to store").WithCause(err)
		}
		return console.ErrInternal("Failed to persist session state").WithCause(err)
	}
	return c.JSON(http.StatusOK, slotBody{Key: s.Key(), Value: s.Get(), Persistent: s.Persistent()})
}

func slotFor(c console.Context) (*state.Slot, error) {
	st := state.FromContext(c.Context())
	if st == nil {
		return nil, console.ErrInternal("Session state unavailable")
	}
	s, err := st.Slot(c.Param("slot"))
	if err != nil {
		return nil, console.ErrNotFound("Unknown state slot").WithCause(err)
	}
	return s, nil
}
