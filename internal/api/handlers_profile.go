package api

import (
	"encoding/json"
	"net/http"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/api/validate"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/services"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetProfile GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	p, err := h.svc.GetProfile(r.Context(), actor.ActorID, actor.SpaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// UpdateProfile PATCH /api/profile. Absent fields keep their stored
// values; a present language must be a supported code.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	var req struct {
		DisplayName *string `json:"displayName"`
		PartnerID   *string `json:"partnerId"`
		Language    *string `json:"language"`
		TimeZone    *string `json:"timeZone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Language != nil {
		if err := validate.LanguageCode(*req.Language); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}
	patch := model.ProfilePatch{
		DisplayName: req.DisplayName,
		PartnerID:   req.PartnerID,
		Language:    req.Language,
		TimeZone:    req.TimeZone,
	}
	p, err := h.svc.UpdateProfile(r.Context(), actor.ActorID, actor.SpaceID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}
