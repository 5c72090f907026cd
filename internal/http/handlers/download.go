package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"product-studio/internal/domain"
	zipper "product-studio/pkg/zip"
)

// Download streams one history item as an attachment with the extension
// derived from its payload MIME.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := a.History.ByID(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no such item")
		return
	}
	data, err := item.Bytes()
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", item.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.Filename()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Export packs the whole history into a ZIP. When an export directory is
// configured the archive is also persisted there.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	items := a.History.Items()
	if len(items) == 0 {
		a.fail(w, domain.ErrNoImageSelected)
		return
	}
	assets := make([]zipper.Asset, 0, len(items))
	for _, item := range items {
		data, err := item.Bytes()
		if err != nil {
			a.Logger.Warn().Str("item", item.ID).Err(err).Msg("skipping undecodable item in export")
			continue
		}
		assets = append(assets, zipper.Asset{Filename: item.Filename(), MIME: item.MIME(), Data: data})
	}
	archive := zipper.ArchiveAssets(assets)
	if len(archive) == 0 {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	if a.Store != nil {
		key := fmt.Sprintf("exports/studio-%s.zip", time.Now().Format("20060102-150405"))
		if _, err := a.Store.Write(r.Context(), key, archive); err != nil {
			a.Logger.Warn().Err(err).Msg("export archive not persisted")
		}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="product-studio-export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
