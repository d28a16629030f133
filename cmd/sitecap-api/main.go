package main

import (
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sitecap/internal/config"
	server "sitecap/internal/http"
	"sitecap/internal/migrate"
	"sitecap/internal/services"
	"sitecap/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.Load(*configPath)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	// Capture history is optional: without a DSN the service runs
	// stateless and GET /api/captures reports unavailable.
	var st *store.Store
	if cfg.Database.DSN != "" {
		if err := migrate.Run(cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}

		db, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open db failed: %v", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		st = store.New(db)
	}

	svc := services.NewCaptureService(cfg, st, logger)

	s := server.NewServer(cfg, svc, st, logger)
	logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := s.Listen(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
