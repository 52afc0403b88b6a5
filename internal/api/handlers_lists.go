package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/api/validate"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/services"
)

// ListHandler is a thin HTTP transport over ListService.
type ListHandler struct {
	svc *services.ListService
}

func NewListHandler(svc *services.ListService) *ListHandler { return &ListHandler{svc: svc} }

// CreateList POST /api/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Manual      bool    `json:"manual"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ListName(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	l := &model.List{
		SpaceID:     actor.SpaceID,
		Name:        req.Name,
		Description: req.Description,
		Manual:      req.Manual,
	}
	out, err := h.svc.CreateList(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListLists GET /api/lists
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	lists, err := h.svc.ListLists(r.Context(), actor.SpaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"lists": lists, "count": len(lists)})
}

// GetList GET /api/lists/{listId}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	l, err := h.svc.GetList(r.Context(), actor.SpaceID, mux.Vars(r)["listId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, l)
}

// DeleteList DELETE /api/lists/{listId}. Notes in the list survive.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if err := h.svc.DeleteList(r.Context(), actor.SpaceID, mux.Vars(r)["listId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
