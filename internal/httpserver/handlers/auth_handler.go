package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"labstock/internal/auth"
	"labstock/internal/store"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(users *store.UserStore, sessions *auth.Sessions, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if !users.Verify(req.Username, req.Password) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		u, err := users.Lookup(req.Username)
		if err != nil {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		tok, jti, expiresAt, err := auth.Sign(u.Username, u.Role)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		sessions.Register(jti, u.Username, expiresAt)
		lg.Infow("login", "user", u.Username)
		respondJSON(w, map[string]any{"token": tok, "username": u.Username, "role": u.Role})
	}
}

func Me(users *store.UserStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.Lookup(auth.Subject(r.Context()))
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{
			"username": u.Username, "role": u.Role, "is_admin": u.IsAdmin(),
		})
	}
}

func Logout(sessions *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Revoke(auth.FromContext(r.Context()).JWTID)
		respondJSON(w, map[string]any{"ok": true})
	}
}

// ActiveView returns the tab index remembered for this session.
func ActiveView(sessions *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := auth.FromContext(r.Context()).JWTID
		respondJSON(w, map[string]any{"active_view": sessions.ActiveView(jti)})
	}
}

// SetActiveView stores the tab index for this session. Switching views has no
// other side effect.
func SetActiveView(sessions *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ActiveView int `json:"active_view"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ActiveView < 0 {
			http.Error(w, "active_view must be non-negative", http.StatusBadRequest)
			return
		}
		sessions.SetActiveView(auth.FromContext(r.Context()).JWTID, req.ActiveView)
		respondJSON(w, map[string]any{"ok": true})
	}
}
