package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bloodcorner/internal/ledger"
	"bloodcorner/internal/middleware"
)

func (a *App) PostsCreate(w http.ResponseWriter, r *http.Request) {
	var in ledger.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	// Each upload slot compresses at most one image at a time; the slots
	// are scoped to the request so parallel submissions do not contend.
	rid := middleware.RequestIDFromContext(r.Context())
	for i, img := range in.Images {
		slot := fmt.Sprintf("post-image:%s:%d", rid, i)
		compressed, err := a.Compressor.CompressDataURI(r.Context(), slot, img)
		if err != nil {
			a.fail(w, err)
			return
		}
		in.Images[i] = compressed
	}

	in.Locale = middleware.LocaleFromContext(r.Context())
	post, err := a.Ledger.AddDonationPost(r.Context(), in)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, post)
}

func (a *App) PostsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Ledger.Posts()})
}
