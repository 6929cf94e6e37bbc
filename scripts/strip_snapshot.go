// One-off maintenance: rewrites a local snapshot file that predates image
// stripping, dropping inline photo and background payloads so the file
// shrinks back to a sane size.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dynamicio/invites/internal/store"
)

func main() {
	path := os.Getenv("SNAPSHOT_PATH")
	if path == "" {
		path = "data/events.json"
	}

	snap := store.NewSnapshot(path)
	events, err := snap.Load()
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	if len(events) == 0 {
		fmt.Println("Snapshot is empty, nothing to do")
		return
	}

	// Save re-applies the sanitization rules on write.
	if err := snap.Save(events); err != nil {
		log.Fatalf("Failed to rewrite snapshot: %v", err)
	}
	fmt.Printf("Rewrote %d events in %s\n", len(events), path)
}
