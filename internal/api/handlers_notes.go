package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/api/validate"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/services"
)

// NoteHandler is a thin HTTP transport over NoteService.
type NoteHandler struct {
	svc *services.NoteService
}

func NewNoteHandler(svc *services.NoteService) *NoteHandler { return &NoteHandler{svc: svc} }

type notePayload struct {
	OriginalInput *string           `json:"originalInput"`
	Summary       *string           `json:"summary"`
	Category      *string           `json:"category"`
	DueDate       *time.Time        `json:"dueDate"`
	ReminderTime  *time.Time        `json:"reminderTime"`
	Recurrence    *model.Recurrence `json:"recurrence"`
	Priority      *model.Priority   `json:"priority"`
	Owner         *model.Owner      `json:"owner"`
	ListID        *string           `json:"listId"`
	Completed     *bool             `json:"completed"`
}

// CreateNote POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	var req notePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	input := ""
	if req.OriginalInput != nil {
		input = *req.OriginalInput
	}
	priority := model.Priority("")
	if req.Priority != nil {
		priority = *req.Priority
	}
	owner := model.OwnerUnassigned
	if req.Owner != nil {
		owner = *req.Owner
	}
	if err := validate.CreateNote(input, req.Summary, priority, owner, req.Recurrence); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.ReminderInstant(req.ReminderTime); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	n := &model.Note{
		SpaceID:       actor.SpaceID,
		OriginalInput: input,
		Summary:       req.Summary,
		Category:      req.Category,
		DueDate:       req.DueDate,
		ReminderTime:  req.ReminderTime,
		Recurrence:    req.Recurrence,
		Priority:      priority,
		Owner:         owner,
		ListID:        req.ListID,
		AuthorID:      actor.ActorID,
	}
	out, err := h.svc.CreateNote(r.Context(), n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListNotes GET /api/notes?listId=&completed=&limit=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	req := model.ListNotesRequest{SpaceID: actor.SpaceID}

	q := r.URL.Query()
	if v := q.Get("listId"); v != "" {
		req.ListID = &v
	}
	if v := q.Get("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respond.WriteBadRequest(w, "completed must be a boolean")
			return
		}
		req.Completed = &b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		req.Limit = n
	}

	notes, err := h.svc.ListNotes(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": notes, "count": len(notes)})
}

// GetNote GET /api/notes/{noteId}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	n, err := h.svc.GetNote(r.Context(), actor.SpaceID, mux.Vars(r)["noteId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

// UpdateNote PATCH /api/notes/{noteId}. Only fields present in the
// body change; absent fields keep their stored values.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	var req notePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	n, err := h.svc.GetNote(r.Context(), actor.SpaceID, mux.Vars(r)["noteId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.OriginalInput != nil {
		n.OriginalInput = *req.OriginalInput
	}
	if req.Summary != nil {
		n.Summary = req.Summary
	}
	if req.Category != nil {
		n.Category = req.Category
	}
	if req.DueDate != nil {
		n.DueDate = req.DueDate
	}
	if req.ReminderTime != nil {
		n.ReminderTime = req.ReminderTime
	}
	if req.Recurrence != nil {
		n.Recurrence = req.Recurrence
	}
	if req.Priority != nil {
		n.Priority = *req.Priority
	}
	if req.Owner != nil {
		n.Owner = *req.Owner
	}
	if req.ListID != nil {
		n.ListID = req.ListID
	}
	if req.Completed != nil {
		n.Completed = *req.Completed
	}

	if err := validate.CreateNote(n.OriginalInput, n.Summary, n.Priority, n.Owner, n.Recurrence); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.UpdateNote(r.Context(), n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteNote DELETE /api/notes/{noteId}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if err := h.svc.DeleteNote(r.Context(), actor.SpaceID, mux.Vars(r)["noteId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteNote POST /api/notes/{noteId}/complete
func (h *NoteHandler) CompleteNote(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	out, err := h.svc.CompleteNote(r.Context(), actor.SpaceID, mux.Vars(r)["noteId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// MarkReminderSent POST /api/notes/{noteId}/reminders/{kind}/sent
func (h *NoteHandler) MarkReminderSent(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	vars := mux.Vars(r)
	out, err := h.svc.MarkReminderSent(r.Context(), actor.SpaceID, vars["noteId"], model.ReminderKind(vars["kind"]))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// writeServiceError maps the model sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
