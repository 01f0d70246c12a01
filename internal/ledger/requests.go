package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bloodcorner/internal/domain"
)

// RequestInput carries the emergency-request form fields.
type RequestInput struct {
	PatientName   string            `json:"patientName"`
	BloodGroup    domain.BloodGroup `json:"bloodGroup"`
	District      string            `json:"district"`
	Upazila       string            `json:"upazila"`
	HospitalName  string            `json:"hospitalName"`
	NeededDate    domain.Date       `json:"neededDate"`
	ContactNumber string            `json:"contactNumber"`
	Description   string            `json:"description"`
}

func (in RequestInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.PatientName) == "" {
		missing = append(missing, "patientName")
	}
	if !in.BloodGroup.Valid() {
		missing = append(missing, "bloodGroup")
	}
	if strings.TrimSpace(in.District) == "" {
		missing = append(missing, "district")
	}
	if strings.TrimSpace(in.Upazila) == "" {
		missing = append(missing, "upazila")
	}
	if strings.TrimSpace(in.HospitalName) == "" {
		missing = append(missing, "hospitalName")
	}
	if in.NeededDate.IsZero() {
		missing = append(missing, "neededDate")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		missing = append(missing, "contactNumber")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// AddEmergencyRequest opens a new request at the head of the collection, so
// reads surface newest-first without re-sorting.
func (s *Service) AddEmergencyRequest(ctx context.Context, in RequestInput) (domain.EmergencyRequest, error) {
	if err := in.validate(); err != nil {
		return domain.EmergencyRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req := domain.EmergencyRequest{
		ID:            uuid.NewString(),
		PatientName:   strings.TrimSpace(in.PatientName),
		BloodGroup:    in.BloodGroup,
		District:      in.District,
		Upazila:       in.Upazila,
		HospitalName:  strings.TrimSpace(in.HospitalName),
		NeededDate:    in.NeededDate,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Description:   in.Description,
		Status:        domain.StatusPending,
		CreatedAt:     s.now(),
	}

	next := append([]domain.EmergencyRequest{req}, s.requests...)
	if err := s.store.SaveRequests(ctx, next); err != nil {
		return domain.EmergencyRequest{}, err
	}
	s.requests = next

	s.metrics.requestsOpened.Inc()
	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	s.log.Info().Str("request_id", req.ID).Str("blood_group", string(req.BloodGroup)).Msg("emergency request opened")
	return req, nil
}

// ResolveEmergencyRequest removes the request outright. Resolved requests
// are not retained; resolving an unknown id is a no-op.
func (s *Service) ResolveEmergencyRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.requests {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := append(append([]domain.EmergencyRequest{}, s.requests[:idx]...), s.requests[idx+1:]...)
	if err := s.store.SaveRequests(ctx, next); err != nil {
		return err
	}
	s.requests = next

	s.metrics.requestsResolved.Inc()
	s.metrics.observeSizes(len(s.donors), len(s.requests), len(s.posts))
	s.log.Info().Str("request_id", id).Msg("emergency request resolved")
	return nil
}

// Requests returns a newest-first snapshot copy.
func (s *Service) Requests() []domain.EmergencyRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EmergencyRequest{}, s.requests...)
}
