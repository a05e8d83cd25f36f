package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/formdesk/console/pkg/logger"
)

// Empty is the "no value" sentinel a slot holds until something is stored.
const Empty = ""

// Option configures a Slot.
type Option func(*slotOptions)

type slotOptions struct {
	logger *slog.Logger
	strict bool
}

// WithLogger sets the logger used to report hydration and persistence problems.
func WithLogger(l *slog.Logger) Option {
	return func(o *slotOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrictHydration makes Open fail on unreadable stored values
// instead of falling back to Empty.
func WithStrictHydration() Option {
	return func(o *slotOptions) {
		o.strict = true
	}
}

type subscriber struct {
	fn func(any)
	id uint64
}

// Slot is one named, observable value mirrored to a Backend.
//
// Set writes through to the backend before notifying subscribers, so callers
// never persist by hand. Writers are serialized: the held value, the stored
// value and the last notification always belong to the same Set. Subscribers
// run synchronously in subscription order and must not write to the slot
// they observe. Writers in different processes are not coordinated: the
// last write wins.
type Slot struct {
	backend Backend
	logger  *slog.Logger
	value   any
	key     string
	subs    []subscriber
	nextID  uint64
	mu      sync.Mutex
	writeMu sync.Mutex
}

// Open creates a slot for key and hydrates it from backend.
//
// A nil backend means no storage is available: the slot starts at Empty and
// is never persisted. With a backend, a missing key or a falsy stored value
// (null, false, 0, "") starts at Empty. An unreadable value starts at Empty
// and is logged, or fails with ErrCorrupt under WithStrictHydration.
func Open(ctx context.Context, backend Backend, key string, opts ...Option) (*Slot, error) {
	o := &slotOptions{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(o)
	}

	s := &Slot{
		backend: backend,
		logger:  o.logger,
		key:     key,
		value:   Empty,
	}
	if backend == nil {
		return s, nil
	}

	v, err := hydrate(ctx, backend, key)
	if err != nil {
		if o.strict {
			return nil, err
		}
		s.logger.WarnContext(ctx, "state slot reset to empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return s, nil
	}
	s.value = v
	return s, nil
}

func hydrate(ctx context.Context, backend Backend, key string) (any, error) {
	data, err := backend.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Empty, nil
	}
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}

	v, err := decodeValue(data)
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	if isFalsy(v) {
		return Empty, nil
	}
	return normalize(v), nil
}

var errTrailingData = errors.New("state: trailing data after value")

// decodeValue decodes one JSON value, keeping numbers as json.Number.
func decodeValue(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

// isFalsy reports the JSON values that hydrate to Empty.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}

// normalize converts json.Number leaves to float64 so hydrated values
// compare equal to values decoded with encoding/json defaults.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	}
	return v
}

// Key returns the storage key.
func (s *Slot) Key() string {
	return s.key
}

// Persistent reports whether the slot writes to a backend.
func (s *Slot) Persistent() bool {
	return s.backend != nil
}

// Get returns the current value.
func (s *Slot) Get() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value, persists it, and notifies subscribers.
// The slot holds v as it reads back from storage: objects become
// map[string]any and numbers float64.
// If persisting fails the new value is still held and broadcast;
// the error is returned so the caller can report it.
func (s *Slot) Set(ctx context.Context, v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.set(ctx, v)
}

// Update sets the value returned by fn, which receives the current value.
// No other write can interleave between reading and setting.
func (s *Slot) Update(ctx context.Context, fn func(current any) any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.set(ctx, fn(s.Get()))
}

// set requires writeMu.
func (s *Slot) set(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	decoded, err := decodeValue(data)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	v = normalize(decoded)

	s.mu.Lock()
	s.value = v
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	var saveErr error
	if s.backend != nil {
		if saveErr = s.backend.Save(ctx, s.key, data); saveErr != nil {
			s.logger.ErrorContext(ctx, "failed to persist state slot",
				slog.String("key", s.key),
				slog.String("error", saveErr.Error()),
			)
		}
	}

	for _, sub := range subs {
		sub.fn(v)
	}
	return saveErr
}

// Subscribe registers fn and calls it immediately with the current value.
// The returned function removes the subscription; calling it twice is a no-op.
func (s *Slot) Subscribe(fn func(any)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Value returns the slot's value asserted to T.
// Returns false when the slot is Empty or holds a different type.
func Value[T any](s *Slot) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v := s.Get()
	if str, ok := v.(string); ok && str == Empty {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
