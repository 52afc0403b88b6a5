package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/api/validate"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/services"
	"github.com/oliveapp/olive-server/internal/views"
)

const (
	defaultPriorityLimit = 3
	defaultDailyDays     = 7
)

// ViewHandler computes the derived read views over the caller's space.
// All derivation happens per request; nothing is cached.
type ViewHandler struct {
	svc *services.NoteService
	now func() time.Time
}

func NewViewHandler(svc *services.NoteService) *ViewHandler {
	return &ViewHandler{svc: svc, now: time.Now}
}

// activeNotes loads the space's non-completed notes as values for the
// pure calculators.
func (h *ViewHandler) activeNotes(r *http.Request) ([]model.Note, error) {
	actor := actorFrom(r)
	active := false
	ptrs, err := h.svc.ListNotes(r.Context(), model.ListNotesRequest{SpaceID: actor.SpaceID, Completed: &active})
	if err != nil {
		return nil, err
	}
	out := make([]model.Note, 0, len(ptrs))
	for _, n := range ptrs {
		out = append(out, *n)
	}
	return out, nil
}

// PriorityView GET /api/views/priority?limit=
func (h *ViewHandler) PriorityView(w http.ResponseWriter, r *http.Request) {
	limit := defaultPriorityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}
	notes, err := h.activeNotes(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ranked := views.RankByPriority(notes, limit)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": ranked, "count": len(ranked)})
}

// DailyView GET /api/views/daily?days=
func (h *ViewHandler) DailyView(w http.ResponseWriter, r *http.Request) {
	days := defaultDailyDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond.WriteBadRequest(w, "days must be an integer")
			return
		}
		days = n
	}
	if err := validate.ViewWindow(days); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	notes, err := h.activeNotes(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days": views.DailyBuckets(notes, h.now(), days),
	})
}

// RemindersView GET /api/views/reminders
func (h *ViewHandler) RemindersView(w http.ResponseWriter, r *http.Request) {
	notes, err := h.activeNotes(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rs := views.Reminders(notes, h.now())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"reminders": rs, "count": len(rs)})
}

// BadgesView GET /api/views/badges
func (h *ViewHandler) BadgesView(w http.ResponseWriter, r *http.Request) {
	notes, err := h.activeNotes(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, views.ComputeBadges(notes, h.now()))
}
