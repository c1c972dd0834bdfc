// Package accounts implements the device-local account registry: signup and
// login over a single JSON collection kept under common.KeyAccounts.
//
// The whole collection is read and rewritten on every mutation. That is fine
// for the handful of accounts a device holds; an indexed layout keyed by id
// could replace it without changing Signup or Login.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/cryptox"
	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/google/uuid"
)

// Test seams.
var (
	newAccountID     = func() string { return "user_" + uuid.NewString() }
	hashCredential   = cryptox.HashCredential
	verifyCredential = cryptox.VerifyCredential
)

// SessionStarter is the part of session.Manager the store needs.
type SessionStarter interface {
	Start(ctx context.Context, u models.User) error
}

type Store struct {
	store    kv.Store
	sessions SessionStarter
}

func NewStore(store kv.Store, sessions SessionStarter) *Store {
	return &Store{store: store, sessions: sessions}
}

// Signup registers a new account and logs it in. It fails with
// common.ErrDuplicateEmail when email is already taken (exact match) and with
// common.ErrValidation when a field is blank.
func (s *Store) Signup(ctx context.Context, name, email, credential string) (models.User, error) {
	if err := validate(name, email, credential); err != nil {
		return models.User{}, err
	}

	var created models.Account
	err := kv.Update(ctx, s.store, common.KeyAccounts, func(raw string, ok bool) (string, error) {
		accounts, err := decode(raw, ok)
		if err != nil {
			return "", err
		}
		for _, a := range accounts {
			if a.Email == email {
				return "", common.ErrDuplicateEmail
			}
		}

		created = models.Account{
			ID:         newAccountID(),
			Name:       name,
			Email:      email,
			Credential: hashCredential(credential),
		}
		return encode(append(accounts, created))
	})
	if err != nil {
		return models.User{}, err
	}

	u := created.User()
	if err := s.sessions.Start(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Login starts a session for the account matching both email and credential.
// Any mismatch, including an unknown email, is common.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, email, credential string) (models.User, error) {
	accounts, err := s.list(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, a := range accounts {
		if a.Email == email && verifyCredential(a.Credential, credential) {
			u := a.User()
			if err := s.sessions.Start(ctx, u); err != nil {
				return models.User{}, err
			}
			return u, nil
		}
	}
	return models.User{}, common.ErrInvalidCredentials
}

func (s *Store) list(ctx context.Context) ([]models.Account, error) {
	raw, ok, err := s.store.Get(ctx, common.KeyAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return decode(raw, ok)
}

func validate(name, email, credential string) error {
	for field, v := range map[string]string{"name": name, "email": email, "password": credential} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s must not be empty", common.ErrValidation, field)
		}
	}
	return nil
}

func decode(raw string, ok bool) ([]models.Account, error) {
	if !ok {
		return []models.Account{}, nil
	}
	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func encode(accounts []models.Account) (string, error) {
	b, err := json.Marshal(accounts)
	if err != nil {
		return "", fmt.Errorf("failed to encode accounts: %w", err)
	}
	return string(b), nil
}
