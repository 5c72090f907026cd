package handlers

import "net/http"

// CatalogTables returns the selectable presets for every panel. Prompt text
// stays server-side; the UI only needs names and identifiers.
func (a *App) CatalogTables(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"edit_presets":         a.Catalog.EditPresets,
		"colors":               a.Catalog.Colors,
		"ad_styles":            a.Catalog.AdStyles,
		"photography_styles":   a.Catalog.PhotoStyles,
		"product_categories":   a.Catalog.Categories,
		"animation_categories": a.Catalog.AnimationCategories,
		"animation_styles":     a.Catalog.AnimationStyles,
		"mockup_models":        a.Catalog.MockupModels,
		"mockup_angles":        a.Catalog.MockupAngles,
		"mockup_lighting":      a.Catalog.MockupLighting,
	})
}
