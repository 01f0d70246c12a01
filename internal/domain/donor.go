package domain

// BloodGroup enumerates the eight supported blood groups.
type BloodGroup string

const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
)

// BloodGroups lists all valid groups in display order.
var BloodGroups = []BloodGroup{
	BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
	BloodOPos, BloodONeg, BloodABPos, BloodABNeg,
}

// Valid reports whether g is one of the eight known groups.
func (g BloodGroup) Valid() bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

// CooldownDays is the number of days a donor must wait after a recorded
// donation before being contactable again.
const CooldownDays = 120

// Donor is a registered volunteer.
type Donor struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	BloodGroup     BloodGroup `json:"bloodGroup"`
	Gender         string     `json:"gender"`
	Age            int        `json:"age"`
	Photo          string     `json:"photo"`
	Phone          string     `json:"phone"`
	District       string     `json:"district"`
	Upazila        string     `json:"upazila"`
	Profession     string     `json:"profession,omitempty"`
	LastDonateDate Date       `json:"lastDonateDate"`
	DonationCount  int        `json:"donationCount"`
	IsApproved     bool       `json:"isApproved"`
	CreatedAt      Date       `json:"createdAt"`
}

// Eligible reports whether the donor can be contacted for a donation on the
// given day. A donor who has never donated is always eligible; otherwise at
// least CooldownDays whole days must have elapsed since the last donation.
func (d Donor) Eligible(today Date) bool {
	return Eligible(d.LastDonateDate, today)
}

// Eligible is the donation-cooldown predicate over a bare last-donation
// date. An unset date means eligible.
func Eligible(lastDonate, today Date) bool {
	if lastDonate.IsZero() {
		return true
	}
	return lastDonate.DaysUntil(today) >= CooldownDays
}
