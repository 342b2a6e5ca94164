package state

import "sync"

// Store keys conversation state by admin id. Only the map itself is guarded;
// the fields of an individual Conversation are mutated without locking on the
// operational assumption of one human operator driving one flow at a time.
// That assumption is a documented scaling limit, not an oversight: going
// multi-admin means adding per-conversation locking here, nothing else.
type Store struct {
	mu            sync.RWMutex
	conversations map[int64]*Conversation
	lastAdmin     int64
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[int64]*Conversation),
	}
}

// Conversation returns the state for the given admin, creating it on first
// use with the wizard at its initial step.
func (s *Store) Conversation(adminID int64) *Conversation {
	s.mu.RLock()
	conv := s.conversations[adminID]
	s.mu.RUnlock()

	if conv != nil {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if conv = s.conversations[adminID]; conv == nil {
		conv = &Conversation{
			AdminID: adminID,
			Draft:   Draft{Step: StepPairSelect},
		}
		s.conversations[adminID] = conv
	}

	return conv
}

// SetLastAdmin records which admin most recently dispatched to the channel.
// The scheduler addresses semi-automated session and day closes to them.
func (s *Store) SetLastAdmin(adminID int64) {
	s.mu.Lock()
	s.lastAdmin = adminID
	s.mu.Unlock()
}

// LastAdmin returns the most recently recorded dispatching admin, or zero
// when nobody has dispatched since startup.
func (s *Store) LastAdmin() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAdmin
}
