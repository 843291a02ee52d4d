package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/monocle-dev/notes/db"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/config"
	"github.com/monocle-dev/notes/internal/handlers"
	"github.com/monocle-dev/notes/internal/router"
	"github.com/monocle-dev/notes/internal/scheduler"
	"github.com/monocle-dev/notes/internal/services"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting with %s", cfg)

	conn, err := db.Connect(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := store.NewGormStore(conn)

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to set up password hasher: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs := scheduler.NewScheduler()
	defer jobs.Stop()

	records, err := tokenRecords(ctx, cfg, conn, jobs)
	if err != nil {
		log.Fatalf("Failed to set up token records: %v", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, records)
	if err != nil {
		log.Fatalf("Failed to set up token issuer: %v", err)
	}

	if cfg.Admin.Enabled() {
		if _, err = services.EnsureAdmin(ctx, s, hasher, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	r := router.NewRouter(router.Options{
		Store:          s,
		Authenticator:  auth.NewAuthenticator(hasher, tokens),
		Handler:        handlers.New(hasher, tokens),
		AllowedOrigins: types.AllowedOrigins(cfg.AllowedOrigins),
	})

	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.BindAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// tokenRecords keeps issuance records in Redis when REDIS_URL is set and in
// the database otherwise. Expired database records are purged by jobs; Redis
// expires its keys itself.
func tokenRecords(ctx context.Context, cfg *config.Config, conn *gorm.DB, jobs *scheduler.Scheduler) (auth.TokenRecords, error) {
	if cfg.RedisURL == "" {
		records := auth.NewDBTokenRecords(conn)

		jobs.Every("purge-expired-tokens", purgeInterval, func(ctx context.Context) error {
			purged, err := records.PurgeExpired(ctx)
			if err == nil && purged > 0 {
				log.Printf("Purged %d expired token records", purged)
			}
			return err
		})

		return records, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	log.Println("Token records stored in Redis")
	return auth.NewRedisTokenRecords(client), nil
}
