package domain

import "testing"

func TestEligible(t *testing.T) {
	today, _ := ParseDate("2024-05-09")
	tests := []struct {
		name string
		last string
		want bool
	}{
		{"never donated", "", true},
		{"donated yesterday", "2024-05-08", false},
		{"119 days ago", "2024-01-11", false},
		{"120 days ago", "2024-01-10", true},
		{"121 days ago", "2024-01-09", true},
		{"years ago", "2020-02-29", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var last Date
			if tc.last != "" {
				var err error
				last, err = ParseDate(tc.last)
				if err != nil {
					t.Fatalf("ParseDate: %v", err)
				}
			}
			if got := Eligible(last, today); got != tc.want {
				t.Fatalf("Eligible(%s, %s) = %v, want %v", tc.last, today, got, tc.want)
			}
			donor := Donor{LastDonateDate: last}
			if got := donor.Eligible(today); got != tc.want {
				t.Fatalf("Donor.Eligible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBloodGroupValid(t *testing.T) {
	for _, g := range BloodGroups {
		if !g.Valid() {
			t.Fatalf("%s should be valid", g)
		}
	}
	for _, bad := range []BloodGroup{"", "C+", "o+", "AB"} {
		if bad.Valid() {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
