package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sify-labs/boq-backend/config"
	"github.com/sify-labs/boq-backend/internal/bootstrap"
	"github.com/sify-labs/boq-backend/internal/catalog"
	"github.com/sify-labs/boq-backend/internal/catalog/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()

	// Postgres is optional in demo mode: without it the service runs with
	// the archive and reference prices disabled.
	dbOpts := bootstrap.DBOptions{DSN: cfg.Database.DSN()}
	pool, err := bootstrap.OpenDB(ctx, dbOpts)
	if err != nil {
		log.Printf("postgres unavailable, archive and reference prices disabled: %v", err)
		pool = nil
	} else {
		defer pool.Close()
	}

	sqlDB, err := bootstrap.OpenSQL(ctx, dbOpts)
	if err != nil {
		log.Printf("postgres unavailable, archive disabled: %v", err)
		sqlDB = nil
	} else {
		defer sqlDB.Close()
	}

	rates := catalog.DefaultRateCard(cfg.App.CustomFloorPrice)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "boq-backend",
		Version:     cfg.App.Version,
		Rates:       rates,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
	})

	if pool != nil {
		refresh.NewScheduler(catalog.NewReferencePriceStore(pool)).Start()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
