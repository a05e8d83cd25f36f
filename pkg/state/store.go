// Package state holds the console's persisted client-side values.
//
// A Store carries two independent slots, session_values and
// login_session_values. Each slot hydrates from an injected Backend when it
// is opened and writes back on every Set. Opening with a nil Backend models a
// context without client storage: both slots start empty and stay in memory.
package state

import (
	"context"
	"fmt"
)

// Storage keys of the two slots.
const (
	SessionValuesKey      = "session_values"
	LoginSessionValuesKey = "login_session_values"
)

// Store groups the session slots. The slots share no invariant.
type Store struct {
	SessionValues      *Slot
	LoginSessionValues *Slot
}

// NewStore opens both slots on backend.
// Errors only occur under WithStrictHydration.
func NewStore(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	session, err := Open(ctx, backend, SessionValuesKey, opts...)
	if err != nil {
		return nil, err
	}
	login, err := Open(ctx, backend, LoginSessionValuesKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{SessionValues: session, LoginSessionValues: login}, nil
}

// Slot returns the slot stored under key.
func (s *Store) Slot(key string) (*Slot, error) {
	switch key {
	case SessionValuesKey:
		return s.SessionValues, nil
	case LoginSessionValuesKey:
		return s.LoginSessionValues, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, key)
}

type storeKey struct{}

// WithStore returns a copy of ctx carrying st.
func WithStore(ctx context.Context, st *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, st)
}

// FromContext returns the Store attached by WithStore, or nil.
func FromContext(ctx context.Context) *Store {
	st, _ := ctx.Value(storeKey{}).(*Store)
	return st
}
