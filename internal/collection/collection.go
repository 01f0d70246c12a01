// Package collection persists the three entity collections as JSON
// snapshots, one blob-store key per collection. Keys match the ones the
// original deployment used, so existing exported data loads unchanged.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"bloodcorner/internal/blobstore"
	"bloodcorner/internal/domain"
)

const (
	DonorsKey   = "jttc_donors"
	RequestsKey = "jttc_requests"
	PostsKey    = "jttc_donation_posts"
)

// Store implements domain.CollectionStore over a blob store.
type Store struct {
	blobs blobstore.Store
	log   zerolog.Logger
}

func NewStore(blobs blobstore.Store, log zerolog.Logger) *Store {
	return &Store{blobs: blobs, log: log}
}

func (s *Store) LoadDonors(ctx context.Context) ([]domain.Donor, error) {
	return load[domain.Donor](ctx, s, DonorsKey)
}

func (s *Store) SaveDonors(ctx context.Context, donors []domain.Donor) error {
	return save(ctx, s, DonorsKey, donors)
}

func (s *Store) LoadRequests(ctx context.Context) ([]domain.EmergencyRequest, error) {
	return load[domain.EmergencyRequest](ctx, s, RequestsKey)
}

func (s *Store) SaveRequests(ctx context.Context, requests []domain.EmergencyRequest) error {
	return save(ctx, s, RequestsKey, requests)
}

func (s *Store) LoadPosts(ctx context.Context) ([]domain.DonationPost, error) {
	return load[domain.DonationPost](ctx, s, PostsKey)
}

func (s *Store) SavePosts(ctx context.Context, posts []domain.DonationPost) error {
	return save(ctx, s, PostsKey, posts)
}

// load returns the stored snapshot for key. A missing key or a blob that no
// longer parses both yield an empty collection; only the store itself being
// unreachable is an error.
func load[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	blob, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("collection: load %s: %w", key, err)
	}
	if len(blob) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("stored snapshot is malformed, starting empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("collection: marshal %s: %w", key, err)
	}
	if err := s.blobs.Put(ctx, key, blob); err != nil {
		return fmt.Errorf("collection: save %s: %w", key, err)
	}
	return nil
}
