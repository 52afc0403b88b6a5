package api

import (
	"net/http"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/auth"
	"github.com/oliveapp/olive-server/internal/locale"
)

// pages are the navigable app screens; the bare "/" is home.
var pages = map[string]string{
	"/":          "home",
	"/home":      "home",
	"/lists":     "lists",
	"/calendar":  "calendar",
	"/reminders": "reminders",
	"/profile":   "profile",
}

// PageHandler is the catch-all for locale-prefixed page URLs. It runs
// the language coordinator for the session and either redirects or
// renders the page payload in the resolved locale.
type PageHandler struct {
	sessions   *Sessions
	authorizer auth.Authorizer
}

func NewPageHandler(sessions *Sessions, authorizer auth.Authorizer) *PageHandler {
	return &PageHandler{sessions: sessions, authorizer: authorizer}
}

// ServePage GET /{path...}
func (h *PageHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	page, ok := pages[locale.StripFromPath(path)]
	if !ok {
		respond.WriteNotFound(w, "no such page")
		return
	}

	// Pages accept but do not require a bearer token; anonymous
	// visitors still get locale resolution from URL and cookie.
	var info *auth.ActorInfo
	if key, err := auth.ExtractAPIKey(r); err == nil {
		if a, err := h.authorizer.Authorize(r.Context(), key); err == nil {
			info = a
		}
	}

	coord := h.sessions.Coordinator(w, r)
	nav := &redirectRecorder{}
	resolved := coord.Resolve(r.Context(), path, sessionEnv(w, r, info, nav))

	if nav.path != "" && nav.path != path {
		http.Redirect(w, r, nav.path, http.StatusFound)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":   page,
		"locale": resolved,
		"path":   locale.BuildLocalizedPath(path, resolved),
		"state":  coord.State().String(),
	})
}
