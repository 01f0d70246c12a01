// Package ledger owns every mutation of the donor, emergency-request and
// donation-post collections. Each operation validates its input fully,
// builds the next snapshot, persists it, and only then commits it to
// memory, so a failed operation leaves both memory and storage unchanged.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bloodcorner/internal/domain"
)

// Service holds the three in-memory collections and their durable mirror.
// All access goes through the service; a mutex serializes the HTTP layer's
// concurrent calls into the single logical writer the storage contract
// assumes.
type Service struct {
	mu       sync.Mutex
	donors   []domain.Donor
	requests []domain.EmergencyRequest
	posts    []domain.DonationPost

	store   domain.CollectionStore
	log     zerolog.Logger
	now     func() time.Time
	metrics *Metrics
}

// NewService loads all three collections from the store.
func NewService(ctx context.Context, store domain.CollectionStore, log zerolog.Logger) (*Service, error) {
	donors, err := store.LoadDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load donors: %w", err)
	}
	requests, err := store.LoadRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load requests: %w", err)
	}
	posts, err := store.LoadPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load posts: %w", err)
	}
	s := &Service{
		donors:   donors,
		requests: requests,
		posts:    posts,
		store:    store,
		log:      log,
		now:      time.Now,
		metrics:  NopMetrics(),
	}
	log.Info().
		Int("donors", len(donors)).
		Int("requests", len(requests)).
		Int("posts", len(posts)).
		Msg("collections loaded")
	return s, nil
}

// WithMetrics attaches prometheus instrumentation.
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	return s
}

// WithClock overrides the service clock. Used by tests to step through the
// donation cooldown.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now reads the service clock. Presentation code uses it so rendered
// eligibility flags agree with what RecordDonorContact will decide.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) today() domain.Date {
	return domain.DateOf(s.now())
}
