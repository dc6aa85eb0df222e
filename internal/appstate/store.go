package appstate

import "sync"

// Store holds the current state and serialises dispatches.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextID      int
}

// NewStore creates a store seeded with initial.
func NewStore(initial State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action and notifies subscribers with the new state.
// Subscribers run on the dispatching goroutine after the lock is released.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
