package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/oliveapp/olive-server/internal/api/recovery"
	"github.com/oliveapp/olive-server/internal/auth"
	"github.com/oliveapp/olive-server/internal/services"
	"github.com/oliveapp/olive-server/internal/store"
)

// NewRouter wires every route: the bearer-authenticated /api surface,
// the health endpoint, and the locale-aware page catch-all.
func NewRouter(s store.Store, authorizer auth.Authorizer, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	noteService := services.NewNoteService(s)
	listService := services.NewListService(s)
	profileService := services.NewProfileService(s)

	// One coordinator per session cookie; profiles back the remote
	// language preference.
	sessions := NewSessions(profileService, log)

	// Handlers
	healthHandler := NewHealthHandler()
	noteHandler := NewNoteHandler(noteService)
	listHandler := NewListHandler(listService)
	profileHandler := NewProfileHandler(profileService)
	viewHandler := NewViewHandler(noteService)
	languageHandler := NewLanguageHandler(sessions)
	pageHandler := NewPageHandler(sessions, authorizer)

	// Health endpoint stays unauthenticated.
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(authorizer))

	// Note endpoints
	api.HandleFunc("/notes", noteHandler.CreateNote).Methods("POST")
	api.HandleFunc("/notes", noteHandler.ListNotes).Methods("GET")
	api.HandleFunc("/notes/{noteId}", noteHandler.GetNote).Methods("GET")
	api.HandleFunc("/notes/{noteId}", noteHandler.UpdateNote).Methods("PATCH")
	api.HandleFunc("/notes/{noteId}", noteHandler.DeleteNote).Methods("DELETE")
	api.HandleFunc("/notes/{noteId}/complete", noteHandler.CompleteNote).Methods("POST")
	api.HandleFunc("/notes/{noteId}/reminders/{kind}/sent", noteHandler.MarkReminderSent).Methods("POST")

	// List endpoints
	api.HandleFunc("/lists", listHandler.CreateList).Methods("POST")
	api.HandleFunc("/lists", listHandler.ListLists).Methods("GET")
	api.HandleFunc("/lists/{listId}", listHandler.GetList).Methods("GET")
	api.HandleFunc("/lists/{listId}", listHandler.DeleteList).Methods("DELETE")

	// Profile endpoints
	api.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	api.HandleFunc("/profile", profileHandler.UpdateProfile).Methods("PATCH")

	// Explicit language switch
	api.HandleFunc("/language", languageHandler.ChangeLanguage).Methods("POST")

	// Derived view endpoints
	api.HandleFunc("/views/priority", viewHandler.PriorityView).Methods("GET")
	api.HandleFunc("/views/daily", viewHandler.DailyView).Methods("GET")
	api.HandleFunc("/views/reminders", viewHandler.RemindersView).Methods("GET")
	api.HandleFunc("/views/badges", viewHandler.BadgesView).Methods("GET")

	// Locale-prefixed pages; registered last so /api wins.
	router.PathPrefix("/").HandlerFunc(pageHandler.ServePage).Methods("GET")

	return router
}
