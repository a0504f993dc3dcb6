package appstate

import "sync"

// Subscriber receives the state tree after every dispatch.
type Subscriber func(State)

// Store serializes dispatch through a mutex so the state tree never has
// concurrent writers. Subscribers observe each resulting state in
// dispatch order.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]Subscriber
	next  int
}

// NewStore creates a store with the initial state tree.
func NewStore() *Store {
	return &Store{
		state: NewState(),
		subs:  make(map[int]Subscriber),
	}
}

// Dispatch runs the action through the reducers and notifies subscribers
// with the new state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	state := s.state
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(state)
	}
}

// State returns a snapshot of the current state tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a subscriber and returns an unsubscribe function.
func (s *Store) Subscribe(sub Subscriber) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = sub
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
