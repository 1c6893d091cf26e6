package listview

import "sync"

// PendingSet tracks record ids with an in-flight mutation. Acquire is the only
// way in and hands back the only way out, so a marker cannot leak past its
// action: Idle -> Pending -> Idle, always.
type PendingSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// Acquire marks id pending. ok is false when the id is already pending, in
// which case release is a no-op. The returned release is idempotent.
func (s *PendingSet) Acquire(id string) (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, exists := s.ids[id]; exists {
		return func() {}, false
	}
	s.ids[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.ids, id)
		})
	}, true
}

// Contains reports whether id has an in-flight mutation.
func (s *PendingSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.ids[id]
	return exists
}

// Len returns the number of pending ids.
func (s *PendingSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
