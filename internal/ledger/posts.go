package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bloodcorner/internal/domain"
	"bloodcorner/internal/i18n"
)

// PostInput carries the memory-wall form fields. Images arrive already
// compressed as data URIs; Locale controls the display-date language.
type PostInput struct {
	DonorName string   `json:"donorName"`
	Message   string   `json:"message"`
	Images    []string `json:"images"`
	Locale    string   `json:"-"`
}

func (in PostInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.DonorName) == "" {
		missing = append(missing, "donorName")
	}
	if strings.TrimSpace(in.Message) == "" {
		missing = append(missing, "message")
	}
	if len(in.Images) == 0 || len(in.Images) > domain.MaxPostImages {
		missing = append(missing, "images")
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img) == "" {
			missing = append(missing, "images")
			break
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// AddDonationPost prepends a new post. The display date is formatted once,
// at creation time, in the submitter's locale; it is stored as an opaque
// string from then on.
func (s *Service) AddDonationPost(ctx context.Context, in PostInput) (domain.DonationPost, error) {
	if err := in.validate(); err != nil {
		return domain.DonationPost{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := domain.DonationPost{
		ID:        uuid.NewString(),
		DonorName: strings.TrimSpace(in.DonorName),
		Message:   strings.TrimSpace(in.Message),
		Images:    append([]string{}, in.Images...),
		Date:      i18n.FormatLongDate(s.now(), in.Locale),
	}

	next := append([]domain.DonationPost{post}, s.posts...)
	if err := s.store.SavePosts(ctx, next); err != nil {
		return domain.DonationPost{}, err
	}
	s.posts = next

	s.metrics.posts.Inc()
	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	s.log.Info().Str("post_id", post.ID).Int("images", len(post.Images)).Msg("donation post added")
	return post, nil
}

// Posts returns a newest-first snapshot copy.
func (s *Service) Posts() []domain.DonationPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DonationPost{}, s.posts...)
}
