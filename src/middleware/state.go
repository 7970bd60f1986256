package middleware

import (
	"context"
	"net/http"
	"sync"
)

type contextKey string

const StateKey contextKey = "tracepage.state"

// State is request-scoped data shown on the debug page. Handlers fill it
// with SetState.
type State struct {
	mu     sync.Mutex
	values map[string]any
}

func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *State) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Snapshot copies the current values.
func (s *State) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func GetStateFromContext(ctx context.Context) (*State, bool) {
	state, ok := ctx.Value(StateKey).(*State)
	return state, ok
}

// SetState stores a request-scoped value. It is a no-op outside the
// middleware.
func SetState(r *http.Request, key string, value any) {
	if state, ok := GetStateFromContext(r.Context()); ok {
		state.Set(key, value)
	}
}

func withState(r *http.Request) *http.Request {
	if _, ok := GetStateFromContext(r.Context()); ok {
		return r
	}
	state := &State{values: make(map[string]any)}
	return r.WithContext(context.WithValue(r.Context(), StateKey, state))
}
