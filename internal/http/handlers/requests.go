package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloodcorner/internal/ledger"
)

func (a *App) RequestsCreate(w http.ResponseWriter, r *http.Request) {
	var in ledger.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req, err := a.Ledger.AddEmergencyRequest(r.Context(), in)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, req)
}

func (a *App) RequestsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Ledger.Requests()})
}

// RequestResolve removes a fulfilled request. Resolving twice is harmless.
func (a *App) RequestResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Ledger.ResolveEmergencyRequest(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
