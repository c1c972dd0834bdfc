// Package saved keeps each account's list of saved niches under
// saved_<accountId>, newest first.
package saved

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/oklog/ulid/v2"
)

var newSavedID = func() string { return "saved_" + ulid.Make().String() }

type Store struct {
	store kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{store: store}
}

// List returns the saved niches of accountID, most recent first. An account
// that never saved anything has an empty list.
func (s *Store) List(ctx context.Context, accountID string) ([]models.Niche, error) {
	raw, ok, err := s.store.Get(ctx, common.SavedKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to read saved niches: %w", err)
	}
	return decode(raw, ok)
}

// Save prepends a copy of niche to the account's list. A niche that matches
// an existing entry by id or by name is ignored. An empty id is replaced by a
// generated one.
func (s *Store) Save(ctx context.Context, accountID string, niche models.Niche) error {
	return kv.Update(ctx, s.store, common.SavedKey(accountID), func(raw string, ok bool) (string, error) {
		list, err := decode(raw, ok)
		if err != nil {
			return "", err
		}
		for _, n := range list {
			if (niche.ID != "" && n.ID == niche.ID) || n.Name == niche.Name {
				return "", kv.ErrNoChange
			}
		}

		c := niche.Clone()
		if c.ID == "" {
			c.ID = newSavedID()
		}
		return encode(append([]models.Niche{c}, list...))
	})
}

// Remove deletes the niche with nicheID. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, accountID, nicheID string) error {
	return kv.Update(ctx, s.store, common.SavedKey(accountID), func(raw string, ok bool) (string, error) {
		list, err := decode(raw, ok)
		if err != nil {
			return "", err
		}
		kept := make([]models.Niche, 0, len(list))
		for _, n := range list {
			if n.ID != nicheID {
				kept = append(kept, n)
			}
		}
		if len(kept) == len(list) {
			return "", kv.ErrNoChange
		}
		return encode(kept)
	})
}

func (s *Store) IsSaved(ctx context.Context, accountID, nicheID string) (bool, error) {
	list, err := s.List(ctx, accountID)
	if err != nil {
		return false, err
	}
	for _, n := range list {
		if n.ID == nicheID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Count(ctx context.Context, accountID string) (int, error) {
	list, err := s.List(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func decode(raw string, ok bool) ([]models.Niche, error) {
	if !ok {
		return []models.Niche{}, nil
	}
	var list []models.Niche
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode saved niches: %w", err)
	}
	if list == nil {
		list = []models.Niche{}
	}
	return list, nil
}

func encode(list []models.Niche) (string, error) {
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode saved niches: %w", err)
	}
	return string(b), nil
}
