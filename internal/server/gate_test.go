package server

import (
	"testing"
	"time"

	"github.com/dynamicio/invites/internal/event"
)

func TestGateResumeExactlyOnce(t *testing.T) {
	g := NewGate()
	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e1", Status: event.Maybe})

	a, ok := g.Resume("s1")
	if !ok {
		t.Fatal("expected a pending action")
	}
	if a.EventID != "e1" || a.Status != event.Maybe {
		t.Errorf("unexpected action: %+v", a)
	}

	if _, ok := g.Resume("s1"); ok {
		t.Error("a resumed action must not run twice")
	}
}

func TestGateSecondDeferOverwrites(t *testing.T) {
	g := NewGate()
	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e1", Status: event.Going})
	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e2", Status: event.NotGoing})

	a, ok := g.Resume("s1")
	if !ok {
		t.Fatal("expected a pending action")
	}
	if a.EventID != "e2" || a.Status != event.NotGoing {
		t.Errorf("expected the later action to win, got %+v", a)
	}
}

func TestGateDiscard(t *testing.T) {
	g := NewGate()
	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e1", Status: event.Going})
	g.Discard("s1")

	if _, ok := g.Resume("s1"); ok {
		t.Error("a discarded action must not resume")
	}

	// Discarding with nothing pending is a no-op, not an error.
	g.Discard("s1")
	g.Discard("never-seen")
}

func TestGateExpiresAbandonedActions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	g := NewGate()
	g.now = func() time.Time { return now }

	g.Defer("abandoned", Action{Kind: ActionRSVP, EventID: "e1", Status: event.Going})

	// Past the TTL the entry neither resumes nor lingers in the map.
	now = now.Add(pendingTTL + time.Minute)
	if _, ok := g.Resume("abandoned"); ok {
		t.Error("an expired action must not resume")
	}

	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e2", Status: event.Maybe})
	g.Defer("s2", Action{Kind: ActionRSVP, EventID: "e3", Status: event.Maybe})
	now = now.Add(pendingTTL + time.Minute)
	g.Defer("s3", Action{Kind: ActionRSVP, EventID: "e4", Status: event.Maybe})

	g.mu.Lock()
	size := len(g.pending)
	g.mu.Unlock()
	if size != 1 {
		t.Errorf("expired entries were not pruned, map holds %d", size)
	}
}

func TestGateSessionsAreIndependent(t *testing.T) {
	g := NewGate()
	g.Defer("s1", Action{Kind: ActionRSVP, EventID: "e1", Status: event.Going})

	if _, ok := g.Resume("s2"); ok {
		t.Error("another session must not see the pending action")
	}
	if _, ok := g.Resume("s1"); !ok {
		t.Error("the owning session's action went missing")
	}
}
