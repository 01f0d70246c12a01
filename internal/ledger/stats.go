package ledger

import "bloodcorner/internal/domain"

// Stats is the summary shown on the home and admin pages.
type Stats struct {
	TotalDonors     int                       `json:"totalDonors"`
	AvailableDonors int                       `json:"availableDonors"`
	PendingRequests int                       `json:"pendingRequests"`
	ByBloodGroup    map[domain.BloodGroup]int `json:"byBloodGroup"`
}

// Summary computes the dashboard counters over the current snapshots. A
// donor counts as available when the donation cooldown has elapsed.
func (s *Service) Summary() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	stats := Stats{
		TotalDonors:  len(s.donors),
		ByBloodGroup: make(map[domain.BloodGroup]int),
	}
	for _, d := range s.donors {
		if d.Eligible(today) {
			stats.AvailableDonors++
		}
		stats.ByBloodGroup[d.BloodGroup]++
	}
	for _, r := range s.requests {
		if r.Status == domain.StatusPending {
			stats.PendingRequests++
		}
	}
	return stats
}
