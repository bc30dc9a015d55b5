package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"neighborfit-engine/internal/config"
	"neighborfit-engine/internal/events"
	"neighborfit-engine/internal/httpapi"
	"neighborfit-engine/internal/scheduler"
	"neighborfit-engine/internal/secrets"
	"neighborfit-engine/internal/store"
)

func main() {
	log.SetFlags(0)

	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("NEIGHBORFIT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race on the db and
	// the config file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return config.Config{}, err
		}
		normalized, vr := config.NormalizeAndValidate(raw)
		if !vr.OK() {
			return config.Config{}, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warning=%q", warn)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "neighborfit.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	if cfg.Seed.OnStart {
		seedOnStart(db, cfg.Seed.ListingsPath)
	}

	jwtSecret, err := secrets.JWTSecret(cfg.Auth.KeyringAccount)
	if err != nil {
		log.Fatalf("jwt secret: %v", err)
	}

	hub := events.NewHub()

	var searchStatus atomic.Value
	searchStatus.Store(httpapi.SearchStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		SearchStatus: &searchStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		JWTSecret:    jwtSecret,
		TokenTTL:     time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		StartedAt:    time.Now(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Periodic stats broadcast keeps dashboards fresh without polling.
	go scheduler.Every(ctx, time.Duration(cfg.Stats.BroadcastSeconds)*time.Second, "stats_broadcast",
		func(ctx context.Context) error {
			stats, err := store.GetStats(ctx, db.Pool)
			if err != nil {
				return err
			}
			hub.Publish(events.MakeEvent("", events.TypeStatsUpdated, stats))
			return nil
		})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
			httpapi.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownToken, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&shutdownToken, srv))

	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s shutdown_token=%s",
		addr, dbPath, shutdownToken)

	go func() {
		<-ctx.Done()
		shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shCancel()
		_ = srv.Shutdown(shCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// seedOnStart bulk-loads listings on an empty database. A missing or bad
// file logs and continues; the engine is still useful via /seed.
func seedOnStart(db *store.DB, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stats, err := store.GetStats(ctx, db.Pool)
	if err != nil {
		log.Printf("level=warn msg=\"seed skipped\" err=%q", err)
		return
	}
	if stats.TotalListings > 0 {
		return
	}

	items, err := store.LoadListingsFile(path)
	if err != nil {
		log.Printf("level=warn msg=\"seed skipped\" err=%q", err)
		return
	}
	added, failed, err := store.SeedListings(ctx, db.Pool, items)
	if err != nil {
		log.Printf("level=warn msg=\"seed failed\" err=%q", err)
		return
	}
	log.Printf("level=info msg=\"seeded listings\" added=%d failed=%d", added, failed)
}
