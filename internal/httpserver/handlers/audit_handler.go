package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"labstock/internal/store"
)

// TailAudit returns the most recent audit entries. Defaults to the last 50,
// matching the admin footer of the dashboard.
func TailAudit(audit *store.AuditLog, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 50
		if s := r.URL.Query().Get("n"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				http.Error(w, "n must be a positive integer", http.StatusBadRequest)
				return
			}
			n = v
		}
		entries, err := audit.Tail(n)
		if err != nil {
			lg.Errorw("audit tail failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, entries)
	}
}

// ExportAudit downloads the full audit log.
func ExportAudit(audit *store.AuditLog, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := audit.Raw()
		if err != nil {
			lg.Errorw("audit read failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="audit_log.csv"`)
		_, _ = w.Write(raw)
	}
}
