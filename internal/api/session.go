package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oliveapp/olive-server/internal/auth"
	"github.com/oliveapp/olive-server/internal/language"
)

const (
	sessionCookie = "olive_sid"
	localeCookie  = "olive_locale"
)

// Sessions maps session cookies to their language coordinators. One
// coordinator per browser session keeps the settled/resolving state
// machine intact across navigations.
type Sessions struct {
	mu    sync.Mutex
	byID  map[string]*language.Coordinator
	prefs language.PreferenceStore
	log   zerolog.Logger
}

func NewSessions(prefs language.PreferenceStore, log zerolog.Logger) *Sessions {
	return &Sessions{
		byID:  make(map[string]*language.Coordinator),
		prefs: prefs,
		log:   log,
	}
}

// Coordinator returns the coordinator for the request's session,
// creating the session (and setting its cookie) on first contact.
func (s *Sessions) Coordinator(w http.ResponseWriter, r *http.Request) *language.Coordinator {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coord, ok := s.byID[id]
	if !ok {
		coord = language.NewCoordinator(s.prefs, s.log)
		s.byID[id] = coord
	}
	return coord
}

// Close tears down one session; its coordinator discards any in-flight
// preference fetch.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	coord := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()
	if coord != nil {
		coord.Close()
	}
}

// cookieLocalStore persists the resolved locale in a client cookie,
// playing the role the browser's local storage plays in the web app.
type cookieLocalStore struct {
	r *http.Request
	w http.ResponseWriter
}

func (c cookieLocalStore) Load() (string, bool) {
	ck, err := c.r.Cookie(localeCookie)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func (c cookieLocalStore) Store(code string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     localeCookie,
		Value:    code,
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectRecorder captures the coordinator's redirect decision so the
// handler can turn it into a 302.
type redirectRecorder struct {
	path string
}

func (r *redirectRecorder) Redirect(path string) { r.path = path }

// actorAuthStatus adapts the middleware's ActorInfo to the
// coordinator's view of authentication. A nil info means anonymous.
type actorAuthStatus struct {
	info *auth.ActorInfo
}

func (a actorAuthStatus) Authenticated() bool { return a.info != nil }

func (a actorAuthStatus) ActorID() string {
	if a.info == nil {
		return ""
	}
	return a.info.ActorID
}

func (a actorAuthStatus) SpaceID() string {
	if a.info == nil {
		return ""
	}
	return a.info.SpaceID
}

// sessionEnv assembles the per-request capability bundle handed to the
// coordinator.
func sessionEnv(w http.ResponseWriter, r *http.Request, info *auth.ActorInfo, nav *redirectRecorder) language.Env {
	return language.Env{
		Auth:  actorAuthStatus{info: info},
		Local: cookieLocalStore{r: r, w: w},
		Nav:   nav,
	}
}
