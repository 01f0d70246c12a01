package domain

// MaxPostImages caps how many images a single post may carry.
const MaxPostImages = 2

// DonationPost is a user-submitted memory-wall entry. Posts are display-only
// once created; the image order matters and the first image is the primary
// one.
type DonationPost struct {
	ID        string   `json:"id"`
	DonorName string   `json:"donorName"`
	Message   string   `json:"message"`
	Images    []string `json:"images"`
	Date      string   `json:"date"`
}
