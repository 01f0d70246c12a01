package domain

import "context"

// CollectionStore is the durable mirror of the three entity collections.
// Every Save overwrites the full snapshot for that collection; Load returns
// the last-saved snapshot, or an empty slice when nothing usable is stored.
type CollectionStore interface {
	LoadDonors(ctx context.Context) ([]Donor, error)
	SaveDonors(ctx context.Context, donors []Donor) error

	LoadRequests(ctx context.Context) ([]EmergencyRequest, error)
	SaveRequests(ctx context.Context, requests []EmergencyRequest) error

	LoadPosts(ctx context.Context) ([]DonationPost, error)
	SavePosts(ctx context.Context, posts []DonationPost) error
}
