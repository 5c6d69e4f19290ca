package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/nbarsukov/authd/internal/auth/http"
	authrepo "github.com/nbarsukov/authd/internal/auth/repository"
	"github.com/nbarsukov/authd/internal/auth/service"
	"github.com/nbarsukov/authd/internal/common/clock"
	"github.com/nbarsukov/authd/internal/common/config"
	commoncrypto "github.com/nbarsukov/authd/internal/common/crypto"
	"github.com/nbarsukov/authd/internal/common/db"
	commonhttp "github.com/nbarsukov/authd/internal/common/http"
	"github.com/nbarsukov/authd/internal/common/logger"
	srv "github.com/nbarsukov/authd/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "authd", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
	if err := db.RunMigrations(migrateCtx, cfg.DatabaseURL); err != nil {
		migrateCancel()
		log.Fatalf("failed to run migrations: %v", err)
	}
	migrateCancel()

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	repo := authrepo.NewPgRepository(pool)
	clk := clock.NewRealClock()
	authService := service.NewAuthService(service.AuthServiceDeps{
		Repo:        repo,
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator: commoncrypto.NewUUIDGenerator(),
		Issuer:      service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL, clk),
		Clock:       clk,
		Log:         log,
	})

	handler := authhttp.NewHandler(authService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler(log, mux))

	srv.StartWithGracefulShutdown(server, log, "authd")
}
