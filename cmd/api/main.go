package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"labstock/internal/auth"
	"labstock/internal/config"
	"labstock/internal/httpserver"
	"labstock/internal/logger"
	"labstock/internal/models"
	"labstock/internal/report"
	"labstock/internal/store"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()
	if os.Getenv("JWT_SECRET") == "" {
		lg.Fatalw("JWT_SECRET is empty")
	}
	cfg := config.Load()

	users := store.NewUserStore(cfg.UsersFile)
	inv := store.NewInventoryStore(cfg.InventoryFile, cfg.InventoryCacheTTL)
	audit := store.NewAuditLog(cfg.AuditFile)
	sessions := auth.NewSessions()
	cache := report.NewCache(cfg.ReportCacheTTL)

	seedDefaultAdmin(users, lg)

	// Initial load: a missing file is an empty table, anything else is fatal.
	if _, err := inv.Load(); err != nil {
		lg.Fatalw("could not load inventory", "error", err)
	}

	router := httpserver.NewRouter(users, inv, audit, sessions, cache, lg)
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

func seedDefaultAdmin(users *store.UserStore, lg *zap.SugaredLogger) {
	existing, err := users.Load()
	if err != nil {
		lg.Fatalw("could not read users file", "error", err)
	}
	if len(existing) > 0 {
		return
	}
	pw := os.Getenv("ADMIN_PASSWORD")
	if pw == "" {
		pw = "changeme"
	}
	if _, err := users.Create("admin", pw, models.RoleAdmin); err != nil {
		lg.Fatalw("could not seed default admin", "error", err)
	}
	lg.Infow("seeded default admin", "username", "admin")
}
