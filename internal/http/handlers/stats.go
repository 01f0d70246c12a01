package handlers

import (
	"net/http"
)

// StatsSummary backs the home-page counters and the admin dashboard chart.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Ledger.Summary())
}
