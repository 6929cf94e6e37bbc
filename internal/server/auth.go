package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dynamicio/invites/internal/auth"
	"github.com/dynamicio/invites/internal/event"
	"github.com/dynamicio/invites/internal/server/handlers"
)

func (s *Server) getGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.config.GoogleClientID,
		ClientSecret: s.config.GoogleClientSecret,
		RedirectURL:  s.config.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	user, err := s.auth.Register(r.Context(),
		r.FormValue("name"), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.writeAuthFailure(w, err)
		return
	}

	s.completeSignIn(w, r, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	user, err := s.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.writeAuthFailure(w, err)
		return
	}

	s.completeSignIn(w, r, user)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	oauthConfig := s.getGoogleOAuthConfig()
	url := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		// The provider window was closed or denied; drop any parked action.
		s.gate.Discard(s.sessionKey(w, r))
		handlers.WriteError(w, http.StatusBadRequest, auth.Message(auth.PopupDismissed))
		return
	}

	oauthConfig := s.getGoogleOAuthConfig()
	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to exchange token")
		return
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to get user info")
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to read user info")
		return
	}

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &userInfo); err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to parse user info")
		return
	}

	user, err := s.auth.AdoptFederated(r.Context(), userInfo.Email, userInfo.Name)
	if err != nil {
		s.writeAuthFailure(w, err)
		return
	}

	if _, err := s.signIn(w, r, user); err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessionStore.Get(r, sessionName)
	if key, ok := session.Values["sid"].(string); ok && key != "" {
		// Logging out abandons any action parked for this session.
		s.gate.Discard(key)
	}
	session.Values["email"] = ""
	session.Values["name"] = ""
	session.Values["uid"] = ""
	session.Options.MaxAge = -1
	session.Save(r, w)

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleAuthCancel discards the session's pending action: the viewer closed
// the sign-in surface without authenticating. Never an error.
func (s *Server) handleAuthCancel(w http.ResponseWriter, r *http.Request) {
	s.gate.Discard(s.sessionKey(w, r))
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// completeSignIn saves the session, replays the deferred action if one is
// parked for this browser, and answers with the signed-in user.
func (s *Server) completeSignIn(w http.ResponseWriter, r *http.Request, user *event.User) {
	result, err := s.signIn(w, r, user)
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request, user *event.User) (map[string]any, error) {
	key := s.sessionKey(w, r)

	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["email"] = user.Email
	session.Values["name"] = user.Name
	session.Values["uid"] = user.UID
	session.Values["sid"] = key
	if err := session.Save(r, w); err != nil {
		return nil, err
	}

	result := map[string]any{"user": user}
	if action, ok := s.gate.Resume(key); ok {
		s.runDeferred(w, r, user, action, result)
	}
	return result, nil
}

func (s *Server) runDeferred(w http.ResponseWriter, r *http.Request, user *event.User, action Action, result map[string]any) {
	switch action.Kind {
	case ActionRSVP:
		updated, err := s.store.SubmitRSVP(action.EventID, action.Status, user, s.GetGuestID(w, r))
		if err != nil {
			// The sign-in itself succeeded; the replayed action failing is
			// only worth a log line and a note in the response.
			log.Printf("Error replaying deferred RSVP for event %s: %v", action.EventID, err)
			return
		}
		result["rsvp"] = map[string]any{"eventId": updated.ID, "status": action.Status}
	}
}

func (s *Server) writeAuthFailure(w http.ResponseWriter, err error) {
	kind := auth.Classify(err)
	status := http.StatusBadRequest
	if kind == auth.Unclassified {
		status = http.StatusInternalServerError
	}
	handlers.WriteJSON(w, status, map[string]any{
		"error": auth.Message(kind),
		"code":  kind,
	})
}
