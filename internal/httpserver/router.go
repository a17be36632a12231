package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"labstock/internal/auth"
	"labstock/internal/httpserver/handlers"
	"labstock/internal/metrics"
	"labstock/internal/models"
	"labstock/internal/report"
	"labstock/internal/store"
)

func NewRouter(users *store.UserStore, inv *store.InventoryStore, audit *store.AuditLog,
	sessions *auth.Sessions, cache *report.Cache, lg *zap.SugaredLogger) http.Handler {

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(metrics.Middleware)
	r.Post("/v1/auth/login", handlers.Login(users, sessions, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(sessions))
		protected.Get("/v1/me", handlers.Me(users, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(sessions))
		protected.Get("/v1/session/view", handlers.ActiveView(sessions))
		protected.Put("/v1/session/view", handlers.SetActiveView(sessions))

		protected.Get("/v1/overview", handlers.Overview(inv, cache, lg))
		protected.Get("/v1/insights", handlers.Insights(inv, cache, lg))
		protected.Get("/v1/insights/categories", handlers.Categories(inv, lg))
		protected.Get("/v1/expiry", handlers.Expiry(inv, cache, lg))

		protected.Get("/v1/items", handlers.ListItems(inv, lg))
		protected.Post("/v1/items", handlers.CreateItem(inv, audit, cache, lg))
		protected.Patch("/v1/items/{id}", handlers.UpdateItem(inv, audit, cache, lg))
		protected.Delete("/v1/items/{id}", handlers.DeleteItem(inv, audit, cache, lg))
		protected.Post("/v1/items/import", handlers.ImportItems(inv, audit, cache, lg))
		protected.Get("/v1/items/export", handlers.ExportItems(inv, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Get("/v1/admin/users", handlers.ListUsers(users, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(users, audit, lg))
			admin.Delete("/v1/admin/users/{name}", handlers.DeleteUser(users, audit, lg))
			admin.Get("/v1/admin/audit", handlers.TailAudit(audit, lg))
			admin.Get("/v1/admin/audit/export", handlers.ExportAudit(audit, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}
