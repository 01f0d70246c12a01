package ledger

import (
	"context"
	"testing"

	"bloodcorner/internal/domain"
	"bloodcorner/internal/i18n"
)

func TestAddDonationPost(t *testing.T) {
	svc := newTestService(t, &memStore{}).WithClock(at(t, "2024-03-05"))
	ctx := context.Background()

	post, err := svc.AddDonationPost(ctx, PostInput{
		DonorName: "Rahim",
		Message:   "Donated at Sadar Hospital today.",
		Images:    []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"},
		Locale:    i18n.LocaleEnglish,
	})
	if err != nil {
		t.Fatalf("AddDonationPost: %v", err)
	}
	if post.Date != "5 March 2024" {
		t.Fatalf("Date = %q", post.Date)
	}
	if len(post.Images) != 2 || post.Images[0] != "data:image/jpeg;base64,AAAA" {
		t.Fatalf("Images = %v, want submission order kept", post.Images)
	}

	second, err := svc.AddDonationPost(ctx, PostInput{
		DonorName: "Karim",
		Message:   "First time donor.",
		Images:    []string{"data:image/jpeg;base64,CCCC"},
		Locale:    i18n.LocaleBengali,
	})
	if err != nil {
		t.Fatalf("AddDonationPost: %v", err)
	}

	got := svc.Posts()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != post.ID {
		t.Fatal("Posts should list newest first")
	}
}

func TestAddDonationPostValidation(t *testing.T) {
	svc := newTestService(t, &memStore{})

	tests := []struct {
		name   string
		input  PostInput
	}{
		{"no images", PostInput{DonorName: "Rahim", Message: "hi"}},
		{"too many images", PostInput{DonorName: "Rahim", Message: "hi", Images: []string{"a", "b", "c"}}},
		{"blank image", PostInput{DonorName: "Rahim", Message: "hi", Images: []string{" "}}},
		{"no donor name", PostInput{Message: "hi", Images: []string{"a"}}},
		{"no message", PostInput{DonorName: "Rahim", Images: []string{"a"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddDonationPost(context.Background(), tc.input); !domain.IsValidation(err) {
				t.Fatalf("AddDonationPost = %v, want ValidationError", err)
			}
		})
	}
	if len(svc.Posts()) != 0 {
		t.Fatal("failed posts must not be stored")
	}
}
