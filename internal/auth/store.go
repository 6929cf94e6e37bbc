package auth

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// MemoryAccounts is the in-process AccountStore used in development and
// tests.
type MemoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{accounts: make(map[string]*Account)}
}

func (m *MemoryAccounts) Create(ctx context.Context, acct *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *acct
	m.accounts[acct.Email] = &c
	return nil
}

func (m *MemoryAccounts) ByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[email]
	if !ok {
		return nil, ErrNoAccount
	}
	c := *acct
	return &c, nil
}

// FirestoreAccounts stores accounts in the users collection, one document
// per account keyed by email.
type FirestoreAccounts struct {
	client *firestore.Client
}

func NewFirestoreAccounts(client *firestore.Client) *FirestoreAccounts {
	return &FirestoreAccounts{client: client}
}

func (f *FirestoreAccounts) Create(ctx context.Context, acct *Account) error {
	if _, err := f.client.Collection(usersCollection).Doc(acct.Email).Set(ctx, acct); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	return nil
}

func (f *FirestoreAccounts) ByEmail(ctx context.Context, email string) (*Account, error) {
	snap, err := f.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNoAccount
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	var acct Account
	if err := snap.DataTo(&acct); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &acct, nil
}
