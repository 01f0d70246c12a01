package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bloodcorner/internal/domain"
	"bloodcorner/internal/ledger"
	"bloodcorner/internal/middleware"
)

func (a *App) DonorsCreate(w http.ResponseWriter, r *http.Request) {
	var in ledger.DonorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.HasPrefix(in.Photo, "data:") {
		slot := "donor-photo:" + middleware.RequestIDFromContext(r.Context())
		compressed, err := a.Compressor.CompressDataURI(r.Context(), slot, in.Photo)
		if err != nil {
			a.fail(w, err)
			return
		}
		in.Photo = compressed
	}
	donor, err := a.Ledger.RegisterDonor(r.Context(), in)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, donor)
}

// DonorsList serves both the plain donor list and the search page. With no
// filter parameters it returns all approved donors in insertion order.
func (a *App) DonorsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.DonorFilter{
		BloodGroup: domain.BloodGroup(q.Get("blood_group")),
		District:   q.Get("district"),
		Upazila:    q.Get("upazila"),
	}

	donors := a.Ledger.SearchDonors(filter)

	today := domain.DateOf(a.Ledger.Now())
	items := make([]donorView, 0, len(donors))
	for _, d := range donors {
		items = append(items, donorView{Donor: d, Eligible: d.Eligible(today)})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// donorView decorates a donor with the computed eligibility flag the list
// pages render.
type donorView struct {
	domain.Donor
	Eligible bool `json:"eligible"`
}

func (a *App) DonorUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in ledger.DonorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.HasPrefix(in.Photo, "data:") {
		slot := "donor-photo:" + middleware.RequestIDFromContext(r.Context())
		compressed, err := a.Compressor.CompressDataURI(r.Context(), slot, in.Photo)
		if err != nil {
			a.fail(w, err)
			return
		}
		in.Photo = compressed
	}
	donor, err := a.Ledger.UpdateDonor(r.Context(), id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, donor)
}

// DonorContact records a donation contact: the list pages call this before
// offering the donor's phone number for dialing.
func (a *App) DonorContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	donor, err := a.Ledger.RecordDonorContact(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, donor)
}

func (a *App) DonorDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Ledger.DeleteDonor(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
