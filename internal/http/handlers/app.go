package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"bloodcorner/internal/domain"
	"bloodcorner/internal/imaging"
	"bloodcorner/internal/ledger"
)

// App is the handler container: the ledger service, the image compressor,
// and a logger.
type App struct {
	Ledger     *ledger.Service
	Compressor *imaging.Compressor
	Log        zerolog.Logger
}

func NewApp(svc *ledger.Service, compressor *imaging.Compressor, log zerolog.Logger) *App {
	return &App{Ledger: svc, Compressor: compressor, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// fail maps ledger/domain errors onto HTTP statuses.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, domain.ErrIneligible):
		a.error(w, http.StatusConflict, "ineligible", "donor is inside the donation cooldown")
	case errors.Is(err, domain.ErrQuotaExceeded):
		a.error(w, http.StatusInsufficientStorage, "storage_full", "storage quota exceeded; delete older posts to free space")
	case errors.Is(err, imaging.ErrSlotBusy):
		a.error(w, http.StatusConflict, "upload_busy", "an image is already being processed for this upload")
	case errors.Is(err, imaging.ErrDecode):
		a.error(w, http.StatusBadRequest, "bad_image", "image could not be decoded")
	default:
		a.Log.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
