package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bloodcorner/internal/domain"
)

// defaultDonorPhoto is shown for donors who registered without a photo.
const defaultDonorPhoto = "https://cdn-icons-png.flaticon.com/512/149/149071.png"

// DonorInput carries the registration / profile-edit form fields.
type DonorInput struct {
	Name           string            `json:"name"`
	BloodGroup     domain.BloodGroup `json:"bloodGroup"`
	Gender         string            `json:"gender"`
	Age            int               `json:"age"`
	Photo          string            `json:"photo"`
	Phone          string            `json:"phone"`
	District       string            `json:"district"`
	Upazila        string            `json:"upazila"`
	Profession     string            `json:"profession"`
	LastDonateDate domain.Date       `json:"lastDonateDate"`
	DonationCount  int               `json:"donationCount"`
}

func (in DonorInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if !in.BloodGroup.Valid() {
		missing = append(missing, "bloodGroup")
	}
	if strings.TrimSpace(in.Gender) == "" {
		missing = append(missing, "gender")
	}
	if in.Age < 18 {
		missing = append(missing, "age")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(in.District) == "" {
		missing = append(missing, "district")
	}
	if strings.TrimSpace(in.Upazila) == "" {
		missing = append(missing, "upazila")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// RegisterDonor appends a new donor. New donors are approved immediately;
// there is no moderation step. The form may carry a starting donation count
// and a past last-donation date for donors who donated before registering.
func (s *Service) RegisterDonor(ctx context.Context, in DonorInput) (domain.Donor, error) {
	if err := in.validate(); err != nil {
		return domain.Donor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	donor := domain.Donor{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		BloodGroup:     in.BloodGroup,
		Gender:         in.Gender,
		Age:            in.Age,
		Photo:          in.Photo,
		Phone:          strings.TrimSpace(in.Phone),
		District:       in.District,
		Upazila:        in.Upazila,
		Profession:     in.Profession,
		LastDonateDate: in.LastDonateDate,
		DonationCount:  max(in.DonationCount, 0),
		IsApproved:     true,
		CreatedAt:      s.today(),
	}
	if donor.Photo == "" {
		donor.Photo = defaultDonorPhoto
	}

	next := append(append([]domain.Donor{}, s.donors...), donor)
	if err := s.store.SaveDonors(ctx, next); err != nil {
		return domain.Donor{}, err
	}
	s.donors = next

	s.metrics.registrations.Inc()
	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	s.log.Info().Str("donor_id", donor.ID).Str("blood_group", string(donor.BloodGroup)).Msg("donor registered")
	return donor, nil
}

// UpdateDonor applies a profile edit. The donation ledger fields
// (lastDonateDate, donationCount) are not editable here; RecordDonorContact
// is their only writer.
func (s *Service) UpdateDonor(ctx context.Context, id string, in DonorInput) (domain.Donor, error) {
	if err := in.validate(); err != nil {
		return domain.Donor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.donorIndex(id)
	if idx < 0 {
		return domain.Donor{}, domain.ErrNotFound
	}

	next := append([]domain.Donor{}, s.donors...)
	donor := next[idx]
	donor.Name = strings.TrimSpace(in.Name)
	donor.BloodGroup = in.BloodGroup
	donor.Gender = in.Gender
	donor.Age = in.Age
	donor.Phone = strings.TrimSpace(in.Phone)
	donor.District = in.District
	donor.Upazila = in.Upazila
	donor.Profession = in.Profession
	if in.Photo != "" {
		donor.Photo = in.Photo
	}
	next[idx] = donor

	if err := s.store.SaveDonors(ctx, next); err != nil {
		return domain.Donor{}, err
	}
	s.donors = next

	s.log.Info().Str("donor_id", id).Msg("donor profile updated")
	return donor, nil
}

// RecordDonorContact marks that the donor was called for a donation today:
// it stamps lastDonateDate and increments donationCount by exactly one.
// Callers are expected to check eligibility before offering the action; the
// cooldown is re-validated here regardless.
func (s *Service) RecordDonorContact(ctx context.Context, id string) (domain.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.donorIndex(id)
	if idx < 0 {
		return domain.Donor{}, domain.ErrNotFound
	}

	today := s.today()
	if !s.donors[idx].Eligible(today) {
		s.metrics.contactsRejected.Inc()
		return domain.Donor{}, domain.ErrIneligible
	}

	next := append([]domain.Donor{}, s.donors...)
	donor := next[idx]
	donor.LastDonateDate = today
	donor.DonationCount++
	next[idx] = donor

	if err := s.store.SaveDonors(ctx, next); err != nil {
		return domain.Donor{}, err
	}
	s.donors = next

	s.metrics.contacts.Inc()
	s.log.Info().Str("donor_id", id).Int("donation_count", donor.DonationCount).Msg("donation contact recorded")
	return donor, nil
}

// DeleteDonor removes the donor. Deleting an unknown id is a no-op: the
// admin page issues deletes in bulk and repeats are harmless.
func (s *Service) DeleteDonor(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.donorIndex(id)
	if idx < 0 {
		return nil
	}

	next := append(append([]domain.Donor{}, s.donors[:idx]...), s.donors[idx+1:]...)
	if err := s.store.SaveDonors(ctx, next); err != nil {
		return err
	}
	s.donors = next

	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	s.log.Info().Str("donor_id", id).Msg("donor deleted")
	return nil
}

// DonorFilter narrows SearchDonors results. Empty fields match everything.
type DonorFilter struct {
	BloodGroup domain.BloodGroup
	District   string
	Upazila    string
}

// Donors returns a snapshot copy in insertion order, optionally restricted
// to approved donors.
func (s *Service) Donors(approvedOnly bool) []domain.Donor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Donor, 0, len(s.donors))
	for _, d := range s.donors {
		if approvedOnly && !d.IsApproved {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SearchDonors filters the approved donors by blood group, district and
// upazila.
func (s *Service) SearchDonors(filter DonorFilter) []domain.Donor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Donor, 0, len(s.donors))
	for _, d := range s.donors {
		if !d.IsApproved {
			continue
		}
		if filter.BloodGroup != "" && d.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.District != "" && d.District != filter.District {
			continue
		}
		if filter.Upazila != "" && d.Upazila != filter.Upazila {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *Service) donorIndex(id string) int {
	for i, d := range s.donors {
		if d.ID == id {
			return i
		}
	}
	return -1
}
