package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// Threshold and timing settings the UI may tune. Anything else is
// rejected so a typo cannot silently persist a dead key.
var knownSettings = map[string]bool{
	"extension_threshold":     true,
	"y_offset_threshold":      true,
	"base_distance_threshold": true,
	"pinch_threshold":         true,
	"zoom_jitter":             true,
	"cooldown_ms":             true,
	"smoothing":               true,
	"screen_width":            true,
	"screen_height":           true,
}

// SettingsHandler handles HTTP requests for the persisted tunables.
type SettingsHandler struct {
	store    *store.Store
	onChange func()
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store, onChange func()) *SettingsHandler {
	return &SettingsHandler{store: s, onChange: onChange}
}

// ServeHTTP implements the http.Handler interface.
// Expected path: /api/settings
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/settings and returns every persisted tunable.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// update handles PUT /api/settings and upserts the supplied keys.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for key, value := range req {
		if !knownSettings[key] {
			writeError(w, http.StatusBadRequest, "Unknown setting: "+key)
			return
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			writeError(w, http.StatusBadRequest, "Setting "+key+" must be numeric")
			return
		}
	}

	for key, value := range req {
		if err := h.store.Settings().Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store setting")
			return
		}
	}

	if h.onChange != nil {
		h.onChange()
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
