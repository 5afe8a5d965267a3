// Package api provides HTTP API handlers for the mudra gesture control system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// BindingHandler handles HTTP requests for gesture binding resources.
type BindingHandler struct {
	store *store.Store

	// onChange is invoked after every successful mutation so the
	// running pipeline can pick up the new policy table.
	onChange func()
}

// NewBindingHandler creates a new BindingHandler with the given store.
func NewBindingHandler(s *store.Store, onChange func()) *BindingHandler {
	return &BindingHandler{store: s, onChange: onChange}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *BindingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/bindings or /api/bindings/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/bindings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createBindingRequest struct {
	Gesture string `json:"gesture"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Button  string `json:"button"`
}

type updateBindingRequest struct {
	Gesture string `json:"gesture"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Button  string `json:"button"`
	Enabled *bool  `json:"enabled"`
}

type bindingResponse struct {
	ID        string `json:"id"`
	Gesture   string `json:"gesture"`
	Kind      string `json:"kind"`
	Key       string `json:"key,omitempty"`
	Button    string `json:"button,omitempty"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listBindingsResponse struct {
	Bindings []bindingResponse `json:"bindings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(b *store.Binding) bindingResponse {
	return bindingResponse{
		ID:        b.ID,
		Gesture:   string(b.Gesture),
		Kind:      string(b.Kind),
		Key:       b.Key,
		Button:    b.Button,
		Enabled:   b.Enabled,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validKind reports whether the kind names a bindable command and,
// for key bindings, whether a key was supplied. Cursor moves are
// synthesized per frame by the pointer gesture and cannot be bound; a
// stored move would carry no coordinates.
func validKind(kind action.Kind, key string) string {
	switch kind {
	case action.KindKey:
		if key == "" {
			return "key is required for key bindings"
		}
	case action.KindClick:
	case action.KindMoveCursor:
		return "move_cursor cannot be bound; pointer moves follow the mouse control gesture"
	default:
		return "Invalid binding kind"
	}
	return ""
}

func (h *BindingHandler) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}

// list handles GET /api/bindings and returns all bindings.
func (h *BindingHandler) list(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.store.Bindings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list bindings")
		return
	}

	response := listBindingsResponse{
		Bindings: make([]bindingResponse, 0, len(bindings)),
	}
	for _, b := range bindings {
		response.Bindings = append(response.Bindings, toResponse(b))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/bindings/{id} and returns a single binding.
func (h *BindingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	binding, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(binding))
}

// create handles POST /api/bindings and creates a new binding.
func (h *BindingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture == "" {
		writeError(w, http.StatusBadRequest, "gesture is required")
		return
	}

	kind := action.Kind(req.Kind)
	if kind == "" {
		kind = action.KindKey
	}
	if msg := validKind(kind, req.Key); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	button := req.Button
	if kind == action.KindClick && button == "" {
		button = "left"
	}

	// One binding per gesture; the unique index would reject the
	// insert anyway but a conflict reads better than a 500.
	existing, err := h.store.Bindings().GetByGesture(gesture.Label(req.Gesture))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check existing binding")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Gesture already has a binding")
		return
	}

	binding := &store.Binding{
		ID:      uuid.New().String(),
		Gesture: gesture.Label(req.Gesture),
		Kind:    kind,
		Key:     req.Key,
		Button:  button,
		Enabled: true,
	}

	if err := h.store.Bindings().Create(binding); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create binding")
		return
	}

	h.changed()
	writeJSON(w, http.StatusCreated, toResponse(binding))
}

// update handles PUT /api/bindings/{id} and updates an existing binding.
func (h *BindingHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	binding, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	var req updateBindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture != "" {
		binding.Gesture = gesture.Label(req.Gesture)
	}
	if req.Kind != "" {
		binding.Kind = action.Kind(req.Kind)
	}
	if req.Key != "" {
		binding.Key = req.Key
	}
	if req.Button != "" {
		binding.Button = req.Button
	}
	if req.Enabled != nil {
		binding.Enabled = *req.Enabled
	}

	if msg := validKind(binding.Kind, binding.Key); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Bindings().Update(binding); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update binding")
		return
	}

	h.changed()
	writeJSON(w, http.StatusOK, toResponse(binding))
}

// delete handles DELETE /api/bindings/{id} and removes a binding.
func (h *BindingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Bindings().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete binding")
		return
	}

	h.changed()
	w.WriteHeader(http.StatusNoContent)
}
