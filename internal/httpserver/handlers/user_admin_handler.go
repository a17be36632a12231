package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"labstock/internal/auth"
	"labstock/internal/metrics"
	"labstock/internal/store"
)

func ListUsers(users *store.UserStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]map[string]any, 0, len(all))
		for _, u := range all {
			out = append(out, map[string]any{"username": u.Username, "role": u.Role})
		}
		respondJSON(w, out)
	}
}

func CreateUser(users *store.UserStore, audit *store.AuditLog, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}
		u, err := users.Create(req.Username, req.Password, req.Role)
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.RecordMutation("user_create")
		if err := audit.Append(auth.Subject(r.Context()), "Created new user: "+u.Username, ""); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, map[string]any{"username": u.Username, "role": u.Role})
	}
}

func DeleteUser(users *store.UserStore, audit *store.AuditLog, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == auth.Subject(r.Context()) {
			http.Error(w, "cannot delete the signed-in user", http.StatusBadRequest)
			return
		}
		err := users.Delete(name)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.RecordMutation("user_delete")
		if err := audit.Append(auth.Subject(r.Context()), "Deleted user: "+name, ""); err != nil {
			lg.Errorw("audit append failed", "error", err)
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
