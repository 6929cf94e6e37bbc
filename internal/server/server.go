package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/dynamicio/invites/internal/auth"
	"github.com/dynamicio/invites/internal/config"
	"github.com/dynamicio/invites/internal/event"
	"github.com/dynamicio/invites/internal/guestid"
	"github.com/dynamicio/invites/internal/server/handlers"
	"github.com/dynamicio/invites/internal/share"
	"github.com/dynamicio/invites/internal/store"
)

const sessionName = "auth-session"

type Server struct {
	config       *config.Config
	store        *store.Store
	auth         *auth.Service
	gate         *Gate
	share        *share.Builder
	sessionStore *sessions.CookieStore
	router       *http.ServeMux
}

// GetStore implements handlers.Server
func (s *Server) GetStore() *store.Store {
	return s.store
}

// GetConfig implements handlers.Server
func (s *Server) GetConfig() *config.Config {
	return s.config
}

// GetShareBuilder implements handlers.Server
func (s *Server) GetShareBuilder() *share.Builder {
	return s.share
}

// GetCurrentUser implements handlers.Server. Nil means anonymous viewer.
func (s *Server) GetCurrentUser(r *http.Request) *event.User {
	session, _ := s.sessionStore.Get(r, sessionName)
	email, _ := session.Values["email"].(string)
	if email == "" {
		return nil
	}
	uid, _ := session.Values["uid"].(string)
	name, _ := session.Values["name"].(string)
	return event.UserFromProfile(uid, email, name)
}

// GetGuestID implements handlers.Server
func (s *Server) GetGuestID(w http.ResponseWriter, r *http.Request) string {
	return guestid.GetOrCreate(w, r)
}

// DeferRSVP implements handlers.Server: remembers the RSVP so the auth flow
// can replay it once the viewer signs in.
func (s *Server) DeferRSVP(w http.ResponseWriter, r *http.Request, eventID string, status event.RSVPStatus) {
	s.gate.Defer(s.sessionKey(w, r), Action{Kind: ActionRSVP, EventID: eventID, Status: status})
}

func New(cfg *config.Config, st *store.Store, authSvc *auth.Service) *Server {
	s := &Server{
		config:       cfg,
		store:        st,
		auth:         authSvc,
		gate:         NewGate(),
		share:        share.NewBuilder(cfg.BaseURL, cfg.DefaultPhoneRegion),
		sessionStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		router:       http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Feed and event routes
	s.router.HandleFunc("GET /{$}", handlers.HandleFeed(s))
	s.router.HandleFunc("POST /events", s.requireAuth(handlers.HandleCreateEvent(s)))
	s.router.HandleFunc("GET /event/{id}", handlers.HandleEventDetail(s))
	s.router.HandleFunc("POST /events/update/{id}", handlers.HandleUpdateEvent(s))
	s.router.HandleFunc("POST /events/delete/{id}", handlers.HandleDeleteEvent(s))
	s.router.HandleFunc("POST /rsvp/{id}", handlers.HandleRSVPSubmit(s))
	s.router.HandleFunc("POST /event/{id}/photos", handlers.HandleAddPhoto(s))
	s.router.HandleFunc("GET /event/{id}/guests.csv", handlers.HandleGuestListCSV(s))

	// Auth routes
	s.router.HandleFunc("POST /auth/register", s.handleRegister)
	s.router.HandleFunc("POST /auth/login", s.handleLogin)
	s.router.HandleFunc("GET /auth/google", s.handleGoogleLogin)
	s.router.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)
	s.router.HandleFunc("POST /auth/logout", s.handleLogout)
	s.router.HandleFunc("POST /auth/cancel", s.handleAuthCancel)
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requireAuth rejects unauthenticated requests. Unlike the RSVP gate this
// is a hard check: event creation has no meaningful deferred form over an
// API, the client re-submits after signing in.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.GetCurrentUser(r) == nil {
			handlers.WriteError(w, http.StatusUnauthorized, "sign in to continue")
			return
		}
		next(w, r)
	}
}

// sessionKey returns this browser's stable gate key, minting one on first
// use. It lives alongside the auth values in the session cookie.
func (s *Server) sessionKey(w http.ResponseWriter, r *http.Request) string {
	session, _ := s.sessionStore.Get(r, sessionName)
	if key, ok := session.Values["sid"].(string); ok && key != "" {
		return key
	}
	key := uuid.NewString()
	session.Values["sid"] = key
	if err := session.Save(r, w); err != nil {
		// Cookie rejected: the pending action only lives for this request.
		return key
	}
	return key
}
