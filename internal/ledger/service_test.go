package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bloodcorner/internal/domain"
)

// memStore is an in-memory CollectionStore with per-call error injection.
type memStore struct {
	donors   []domain.Donor
	requests []domain.EmergencyRequest
	posts    []domain.DonationPost
	saveErr  error
}

func (m *memStore) LoadDonors(context.Context) ([]domain.Donor, error) {
	return append([]domain.Donor{}, m.donors...), nil
}

func (m *memStore) SaveDonors(_ context.Context, donors []domain.Donor) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.donors = append([]domain.Donor{}, donors...)
	return nil
}

func (m *memStore) LoadRequests(context.Context) ([]domain.EmergencyRequest, error) {
	return append([]domain.EmergencyRequest{}, m.requests...), nil
}

func (m *memStore) SaveRequests(_ context.Context, requests []domain.EmergencyRequest) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.requests = append([]domain.EmergencyRequest{}, requests...)
	return nil
}

func (m *memStore) LoadPosts(context.Context) ([]domain.DonationPost, error) {
	return append([]domain.DonationPost{}, m.posts...), nil
}

func (m *memStore) SavePosts(_ context.Context, posts []domain.DonationPost) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.posts = append([]domain.DonationPost{}, posts...)
	return nil
}

func newTestService(t *testing.T, store *memStore) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func at(t *testing.T, day string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse %q: %v", day, err)
	}
	return func() time.Time { return parsed }
}

func validDonorInput() DonorInput {
	return DonorInput{
		Name:       "Rahim",
		BloodGroup: domain.BloodOPos,
		Gender:     "Male",
		Age:        27,
		Phone:      "01700000000",
		District:   "Jashore",
		Upazila:    "Jashore Sadar",
	}
}

func TestRegisterDonor(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store).WithClock(at(t, "2024-01-10"))

	donor, err := svc.RegisterDonor(context.Background(), validDonorInput())
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}
	if donor.ID == "" {
		t.Fatal("donor has no id")
	}
	if !donor.IsApproved {
		t.Fatal("new donor should be approved")
	}
	if donor.CreatedAt.String() != "2024-01-10" {
		t.Fatalf("CreatedAt = %s", donor.CreatedAt)
	}
	if donor.Photo != defaultDonorPhoto {
		t.Fatalf("Photo = %q, want placeholder", donor.Photo)
	}
	if !donor.Eligible(domain.DateOf(svc.Now())) {
		t.Fatal("donor with no last donation should be eligible")
	}
	if len(store.donors) != 1 {
		t.Fatalf("store holds %d donors, want 1", len(store.donors))
	}
}

func TestRegisterDonorValidation(t *testing.T) {
	svc := newTestService(t, &memStore{})

	tests := []struct {
		name   string
		mutate func(*DonorInput)
	}{
		{"missing name", func(in *DonorInput) { in.Name = "  " }},
		{"bad blood group", func(in *DonorInput) { in.BloodGroup = "X+" }},
		{"missing gender", func(in *DonorInput) { in.Gender = "" }},
		{"underage", func(in *DonorInput) { in.Age = 17 }},
		{"missing phone", func(in *DonorInput) { in.Phone = "" }},
		{"missing district", func(in *DonorInput) { in.District = "" }},
		{"missing upazila", func(in *DonorInput) { in.Upazila = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validDonorInput()
			tc.mutate(&in)
			if _, err := svc.RegisterDonor(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("RegisterDonor = %v, want ValidationError", err)
			}
		})
	}
	if len(svc.Donors(false)) != 0 {
		t.Fatal("failed registrations must not mutate the collection")
	}
}

func TestRegisterDonorClampsNegativeCount(t *testing.T) {
	svc := newTestService(t, &memStore{})

	in := validDonorInput()
	in.DonationCount = -3
	donor, err := svc.RegisterDonor(context.Background(), in)
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}
	if donor.DonationCount != 0 {
		t.Fatalf("DonationCount = %d, want 0", donor.DonationCount)
	}
}

func TestRecordDonorContactLifecycle(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store).WithClock(at(t, "2024-01-10"))
	ctx := context.Background()

	donor, err := svc.RegisterDonor(ctx, validDonorInput())
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}

	updated, err := svc.RecordDonorContact(ctx, donor.ID)
	if err != nil {
		t.Fatalf("RecordDonorContact: %v", err)
	}
	if updated.DonationCount != donor.DonationCount+1 {
		t.Fatalf("DonationCount = %d, want %d", updated.DonationCount, donor.DonationCount+1)
	}
	if updated.LastDonateDate.String() != "2024-01-10" {
		t.Fatalf("LastDonateDate = %s", updated.LastDonateDate)
	}

	// Immediately again: inside the cooldown.
	if _, err := svc.RecordDonorContact(ctx, donor.ID); !errors.Is(err, domain.ErrIneligible) {
		t.Fatalf("second contact = %v, want ErrIneligible", err)
	}
	after := svc.Donors(false)[0]
	if after.DonationCount != updated.DonationCount || after.LastDonateDate != updated.LastDonateDate {
		t.Fatalf("failed contact mutated state: %+v", after)
	}

	// One day short of the cooldown.
	svc.WithClock(at(t, "2024-05-08"))
	if _, err := svc.RecordDonorContact(ctx, donor.ID); !errors.Is(err, domain.ErrIneligible) {
		t.Fatalf("contact at 119 days = %v, want ErrIneligible", err)
	}

	// Exactly 120 days later the donor is eligible again.
	svc.WithClock(at(t, "2024-05-09"))
	again, err := svc.RecordDonorContact(ctx, donor.ID)
	if err != nil {
		t.Fatalf("contact at 120 days: %v", err)
	}
	if again.DonationCount != updated.DonationCount+1 {
		t.Fatalf("DonationCount = %d, want %d", again.DonationCount, updated.DonationCount+1)
	}
}

func TestRecordDonorContactUnknownID(t *testing.T) {
	svc := newTestService(t, &memStore{})
	if _, err := svc.RecordDonorContact(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("RecordDonorContact = %v, want ErrNotFound", err)
	}
}

func TestDeleteDonorIdempotent(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store)
	ctx := context.Background()

	a, _ := svc.RegisterDonor(ctx, validDonorInput())
	in := validDonorInput()
	in.Name = "Karim"
	b, _ := svc.RegisterDonor(ctx, in)

	if err := svc.DeleteDonor(ctx, a.ID); err != nil {
		t.Fatalf("DeleteDonor: %v", err)
	}
	if err := svc.DeleteDonor(ctx, a.ID); err != nil {
		t.Fatalf("second DeleteDonor: %v", err)
	}

	left := svc.Donors(false)
	if len(left) != 1 || left[0].ID != b.ID {
		t.Fatalf("Donors = %+v, want only %s", left, b.ID)
	}
	if len(store.donors) != 1 {
		t.Fatalf("store holds %d donors, want 1", len(store.donors))
	}
}

func TestUpdateDonorKeepsLedgerFields(t *testing.T) {
	svc := newTestService(t, &memStore{}).WithClock(at(t, "2024-01-10"))
	ctx := context.Background()

	donor, _ := svc.RegisterDonor(ctx, validDonorInput())
	if _, err := svc.RecordDonorContact(ctx, donor.ID); err != nil {
		t.Fatalf("RecordDonorContact: %v", err)
	}

	in := validDonorInput()
	in.Name = "Rahim Uddin"
	in.LastDonateDate, _ = domain.ParseDate("1999-01-01")
	in.DonationCount = 99
	updated, err := svc.UpdateDonor(ctx, donor.ID, in)
	if err != nil {
		t.Fatalf("UpdateDonor: %v", err)
	}
	if updated.Name != "Rahim Uddin" {
		t.Fatalf("Name = %q", updated.Name)
	}
	if updated.LastDonateDate.String() != "2024-01-10" || updated.DonationCount != 1 {
		t.Fatalf("profile edit touched ledger fields: %+v", updated)
	}

	if _, err := svc.UpdateDonor(ctx, "nope", validDonorInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateDonor unknown id = %v, want ErrNotFound", err)
	}
}

func TestSearchDonors(t *testing.T) {
	svc := newTestService(t, &memStore{})
	ctx := context.Background()

	add := func(group domain.BloodGroup, district, upazila string) {
		in := validDonorInput()
		in.BloodGroup = group
		in.District = district
		in.Upazila = upazila
		if _, err := svc.RegisterDonor(ctx, in); err != nil {
			t.Fatalf("RegisterDonor: %v", err)
		}
	}
	add(domain.BloodOPos, "Jashore", "Jashore Sadar")
	add(domain.BloodOPos, "Jashore", "Monirampur")
	add(domain.BloodABNeg, "Khulna", "Dumuria")

	tests := []struct {
		name   string
		filter DonorFilter
		want   int
	}{
		{"no filter", DonorFilter{}, 3},
		{"by group", DonorFilter{BloodGroup: domain.BloodOPos}, 2},
		{"by district", DonorFilter{District: "Jashore"}, 2},
		{"group and upazila", DonorFilter{BloodGroup: domain.BloodOPos, Upazila: "Monirampur"}, 1},
		{"no match", DonorFilter{BloodGroup: domain.BloodBNeg}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.SearchDonors(tc.filter); len(got) != tc.want {
				t.Fatalf("SearchDonors = %d results, want %d", len(got), tc.want)
			}
		})
	}
}

func TestSaveFailureLeavesMemoryUnchanged(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store)
	ctx := context.Background()

	donor, err := svc.RegisterDonor(ctx, validDonorInput())
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}

	store.saveErr = domain.ErrQuotaExceeded
	in := validDonorInput()
	in.Name = "Karim"
	if _, err := svc.RegisterDonor(ctx, in); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("RegisterDonor with full store = %v, want ErrQuotaExceeded", err)
	}

	donors := svc.Donors(false)
	if len(donors) != 1 || donors[0].ID != donor.ID {
		t.Fatalf("in-memory collection changed after failed save: %+v", donors)
	}
	if len(store.donors) != 1 {
		t.Fatalf("stored snapshot changed after failed save")
	}
}
