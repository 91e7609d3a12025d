package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookconsole/internal/console"
	"bookconsole/internal/gateway"
	"bookconsole/internal/httpx"
	"bookconsole/internal/session"
	"bookconsole/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
)

const janitorInterval = 10 * time.Minute

func main() {
	loadEnvFiles()
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gateway.NewClient(cfg.APIURL, cfg.GatewayUserAgent, cfg.GatewayTimeout)

	repo, ready, closeStore := openSessionStore(ctx, cfg.DatabaseDSN)
	defer closeStore()

	sessions := session.NewService(repo, client, cfg.SessionTTL)
	views := console.NewRegistry(client, log.Default())
	go sessions.RunJanitor(ctx, janitorInterval, func(ctx context.Context) {
		n := views.Prune(func(id string) bool { return sessions.Live(ctx, id) })
		if n > 0 {
			log.Printf("console views pruned=%d", n)
		}
	})

	handler := web.NewHandler(sessions, views, httpx.SessionCookies{Secure: cfg.CookieSecure}, ready)
	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	httpServer := &http.Server{
		Addr: cfg.Addr,
		Handler: httpx.Chain(handler.Routes(),
			httpx.RequestIDMiddleware,
			httpx.AccessLogMiddleware,
			httpx.RecoveryMiddleware,
			httpx.SecurityHeadersMiddleware,
			limiter.Middleware,
			httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting console on %s (api=%s)", cfg.Addr, client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openSessionStore picks Postgres when a DSN is configured and the
// in-memory store otherwise.
func openSessionStore(ctx context.Context, dsn string) (session.Repository, web.ReadyFunc, func()) {
	if dsn == "" {
		log.Println("DB_DSN not set, sessions are kept in memory")
		return session.NewMemoryRepo(), nil, func() {}
	}
	pool := mustOpenDB(ctx, dsn)
	return session.NewPostgresRepo(pool, 3*time.Second), pool.Ping, pool.Close
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}
