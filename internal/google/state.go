package google

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStateTTL bounds how long an issued authorization state is accepted.
const DefaultStateTTL = 10 * time.Minute

type pendingState struct {
	hint    string
	expires time.Time
}

// stateRegistry tracks issued authorization states. Each state is accepted
// at most once and only before it expires.
type stateRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]pendingState
}

func newStateRegistry(ttl time.Duration) *stateRegistry {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &stateRegistry{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]pendingState),
	}
}

// issue creates a random state, remembering the caller's account hint.
func (r *stateRegistry) issue(hint string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	state := id.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	r.pending[state] = pendingState{hint: hint, expires: now.Add(r.ttl)}
	return state, nil
}

// consume removes state and reports whether it was issued and still live.
func (r *stateRegistry) consume(state string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[state]
	if !ok {
		return "", false
	}
	delete(r.pending, state)
	if !r.now().Before(p.expires) {
		return "", false
	}
	return p.hint, true
}

func (r *stateRegistry) sweepLocked(now time.Time) {
	for state, p := range r.pending {
		if !now.Before(p.expires) {
			delete(r.pending, state)
		}
	}
}

func (r *stateRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
