package server

import (
	"sync"
	"time"

	"github.com/dynamicio/invites/internal/event"
)

// ActionKind names the gated actions the auth flow can replay.
type ActionKind string

const ActionRSVP ActionKind = "rsvp"

// pendingTTL bounds how long a deferred action waits for a sign-in.
// Abandoned anonymous sessions never resume, so their entries expire
// instead of accumulating.
const pendingTTL = time.Hour

// Action is one deferred user action, parked until sign-in completes.
type Action struct {
	Kind    ActionKind
	EventID string
	Status  event.RSVPStatus
}

type pendingAction struct {
	action  Action
	expires time.Time
}

// Gate holds at most one pending action per session. Deferring a second
// action before the first resolves overwrites it; a successful sign-in
// resumes the action exactly once; closing the sign-in surface or logging
// out discards it with no error. Entries not resumed within pendingTTL
// are dropped.
type Gate struct {
	mu      sync.Mutex
	pending map[string]pendingAction
	now     func() time.Time
}

func NewGate() *Gate {
	return &Gate{
		pending: make(map[string]pendingAction),
		now:     time.Now,
	}
}

// Defer parks an action for the session, replacing any earlier one.
func (g *Gate) Defer(sessionKey string, a Action) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune()
	g.pending[sessionKey] = pendingAction{action: a, expires: g.now().Add(pendingTTL)}
}

// Resume pops the pending action, if any. The second call for the same
// sign-in returns false: the action runs exactly once.
func (g *Gate) Resume(sessionKey string) (Action, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pending[sessionKey]
	if !ok {
		return Action{}, false
	}
	delete(g.pending, sessionKey)
	if g.now().After(p.expires) {
		return Action{}, false
	}
	return p.action, true
}

// Discard drops the pending action without running it.
func (g *Gate) Discard(sessionKey string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, sessionKey)
}

// prune drops expired entries. Callers must hold g.mu.
func (g *Gate) prune() {
	now := g.now()
	for key, p := range g.pending {
		if now.After(p.expires) {
			delete(g.pending, key)
		}
	}
}
