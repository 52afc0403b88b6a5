package api

import (
	"encoding/json"
	"net/http"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/api/validate"
	"github.com/oliveapp/olive-server/internal/locale"
)

// LanguageHandler serves the explicit language switch.
type LanguageHandler struct {
	sessions *Sessions
}

func NewLanguageHandler(sessions *Sessions) *LanguageHandler {
	return &LanguageHandler{sessions: sessions}
}

// ChangeLanguage POST /api/language. The body names the target language
// and the path the caller is on; the response carries the localized
// path the client should navigate to. Switching to the current language
// is a no-op and returns the path unchanged.
func (h *LanguageHandler) ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
		Path     string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.LanguageCode(req.Language); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if req.Path == "" {
		req.Path = "/"
	}
	l, _ := locale.Parse(req.Language)

	coord := h.sessions.Coordinator(w, r)
	nav := &redirectRecorder{}
	coord.ChangeLanguage(r.Context(), l, req.Path, sessionEnv(w, r, actorFrom(r), nav))

	redirect := nav.path
	if redirect == "" {
		redirect = locale.BuildLocalizedPath(req.Path, coord.Current())
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"locale":   coord.Current(),
		"redirect": redirect,
	})
}
