// Package auth manages accounts: email+password registration and login,
// plus adoption of federated (Google) profiles. Sessions themselves are the
// server's concern; this package only answers "who is this".
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dynamicio/invites/internal/event"
)

const minPasswordLen = 6

// ErrNoAccount is what account stores return when no account exists for an
// email address.
var ErrNoAccount = errors.New("no account for email")

// Account is a stored credentialed user.
type Account struct {
	UID          string `json:"uid" firestore:"uid"`
	Email        string `json:"email" firestore:"email"`
	Name         string `json:"name" firestore:"name"`
	PasswordHash string `json:"passwordHash" firestore:"passwordHash"`
}

// AccountStore persists accounts, keyed by email.
type AccountStore interface {
	Create(ctx context.Context, acct *Account) error
	ByEmail(ctx context.Context, email string) (*Account, error)
}

// Service runs the registration and login flows over an AccountStore.
type Service struct {
	accounts AccountStore
}

func NewService(accounts AccountStore) *Service {
	return &Service{accounts: accounts}
}

// Register creates an account and returns the signed-in user. Validation
// failures come back as the classified sentinel errors.
func (s *Service) Register(ctx context.Context, name, email, password string) (*event.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.accounts.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, ErrNoAccount) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := &Account{
		UID:          uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return event.UserFromProfile(acct.UID, acct.Email, acct.Name), nil
}

// Login verifies email+password credentials. Wrong password and unknown
// email both collapse into ErrBadCredential so callers cannot probe for
// registered addresses.
func (s *Service) Login(ctx context.Context, email, password string) (*event.User, error) {
	acct, err := s.accounts.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return nil, ErrBadCredential
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredential
	}
	return event.UserFromProfile(acct.UID, acct.Email, acct.Name), nil
}

// AdoptFederated records a federated (OAuth) profile on first sign-in so a
// provider-backed account also shows up in the account store, then returns
// the signed-in user. Federated accounts carry no password hash.
func (s *Service) AdoptFederated(ctx context.Context, email, displayName string) (*event.User, error) {
	email = normalizeEmail(email)
	if acct, err := s.accounts.ByEmail(ctx, email); err == nil {
		return event.UserFromProfile(acct.UID, acct.Email, acct.Name), nil
	} else if !errors.Is(err, ErrNoAccount) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	acct := &Account{
		UID:   uuid.NewString(),
		Email: email,
		Name:  strings.TrimSpace(displayName),
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to adopt federated account: %w", err)
	}
	return event.UserFromProfile(acct.UID, acct.Email, acct.Name), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
