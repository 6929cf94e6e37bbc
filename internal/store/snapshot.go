package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/dynamicio/invites/internal/event"
)

// Snapshot persists a last-known-good copy of the event list to a local
// file, the fallback when the remote store cannot be reached on startup.
// Saved events are sanitized: album photos and inline (data URL) background
// images are stripped so the file stays small.
type Snapshot struct {
	path string
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Save writes the sanitized event list. A failed write gets one retry with
// a further reduced payload (all background images dropped, https URLs
// included) before the error is surfaced.
func (s *Snapshot) Save(events []*event.Event) error {
	err := s.write(sanitize(events, false))
	if err == nil {
		return nil
	}
	if retryErr := s.write(sanitize(events, true)); retryErr != nil {
		return fmt.Errorf("failed to save snapshot: %w", multierr.Append(err, retryErr))
	}
	return nil
}

// Load reads the last saved snapshot. A missing file is not an error: it
// yields an empty list, the defined state for a first run with no remote.
func (s *Snapshot) Load() ([]*event.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var events []*event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return events, nil
}

func (s *Snapshot) write(events []*event.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// sanitize strips the heavy image payloads. Inline data URLs always go;
// plain https URLs survive unless stripAll is set.
func sanitize(events []*event.Event, stripAll bool) []*event.Event {
	out := make([]*event.Event, 0, len(events))
	for _, ev := range events {
		c := ev.Clone()
		c.Photos = nil
		if stripAll || strings.HasPrefix(c.BackgroundImage, "data:") {
			c.BackgroundImage = ""
		}
		out = append(out, c)
	}
	return out
}
