package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/dynamicio/invites/internal/auth"
	"github.com/dynamicio/invites/internal/config"
	"github.com/dynamicio/invites/internal/server"
	"github.com/dynamicio/invites/internal/store"
)

func main() {
	// Load .env file (ignore error if a file doesn't exist)
	if err := godotenv.Overload(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Construct the backends explicitly so everything shares one client
	// with a single close path. No Firestore project means in-memory
	// backends: the server still runs, nothing survives a restart.
	var (
		remote   store.RemoteStore
		accounts auth.AccountStore
		client   *firestore.Client
	)
	if cfg.FirestoreProjectID != "" {
		client, err = firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		remote = store.NewFirestoreRemote(client)
		accounts = auth.NewFirestoreAccounts(client)
	} else {
		log.Printf("FIRESTORE_PROJECT_ID not set, using in-memory backends")
		remote = store.NewMemoryRemote()
		accounts = auth.NewMemoryAccounts()
	}

	st := store.New(remote, store.NewSnapshot(cfg.SnapshotPath))
	if err := st.Load(ctx); err != nil {
		log.Fatalf("Failed to load events: %v", err)
	}

	shutdown := func() error {
		err := st.Close()
		if client != nil {
			err = multierr.Append(err, client.Close())
		}
		return err
	}

	// Drain pending remote writes on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("Shutting down")
		if err := shutdown(); err != nil {
			log.Printf("Warning: shutdown error: %v", err)
		}
		os.Exit(0)
	}()

	srv := server.New(cfg, st, auth.NewService(accounts))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
