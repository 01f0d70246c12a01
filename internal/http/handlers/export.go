package handlers

import (
	"encoding/json"
	"net/http"

	"bloodcorner/internal/collection"
	"bloodcorner/pkg/zip"
)

// AdminExport downloads all three collections as a zip of JSON snapshots,
// in the same format the persistence layer stores them.
func (a *App) AdminExport(w http.ResponseWriter, r *http.Request) {
	entries := []struct {
		key string
		v   any
	}{
		{collection.DonorsKey, a.Ledger.Donors(false)},
		{collection.RequestsKey, a.Ledger.Requests()},
		{collection.PostsKey, a.Ledger.Posts()},
	}

	var assets []zip.Asset
	for _, entry := range entries {
		blob, err := json.MarshalIndent(entry.v, "", "  ")
		if err != nil {
			a.fail(w, err)
			return
		}
		assets = append(assets, zip.Asset{
			Filename: entry.key + ".json",
			MIME:     "application/json",
			Data:     blob,
		})
	}

	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename=bloodcorner-export.zip`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
