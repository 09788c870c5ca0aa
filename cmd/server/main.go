package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jeroenpelgrims/cookieauth/internal/config"
	"github.com/jeroenpelgrims/cookieauth/internal/events"
	"github.com/jeroenpelgrims/cookieauth/internal/httpserver"
	"github.com/jeroenpelgrims/cookieauth/internal/logging"
	"github.com/jeroenpelgrims/cookieauth/internal/middleware"
	"github.com/jeroenpelgrims/cookieauth/internal/models"
	"github.com/jeroenpelgrims/cookieauth/internal/service"
	"github.com/jeroenpelgrims/cookieauth/internal/session"
	"github.com/jeroenpelgrims/cookieauth/internal/store"
	"github.com/jeroenpelgrims/cookieauth/internal/token"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.AuthMode != config.ModeToken && cfg.AuthMode != config.ModeSession {
		log.Fatalf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
	if cfg.AuthMode == config.ModeToken {
		config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	}

	rootCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	rootCtx = logging.IntoContext(rootCtx, logger)

	users, sessions, err := buildStores(rootCtx, cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	audit, err := buildAudit(cfg)
	if err != nil {
		log.Fatalf("audit init error: %v", err)
	}
	defer audit.Close()

	svc := &service.AuthService{
		Users:      users,
		Sessions:   sessions,
		Tokens:     &token.Service{Secret: cfg.JWTSecret},
		Audit:      audit,
		Mode:       cfg.AuthMode,
		TokenTTL:   cfg.TokenTTL,
		SessionTTL: cfg.SessionTTL,
	}

	if cfg.AuthMode == config.ModeSession {
		go session.Janitor(rootCtx, sessions, time.Minute)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &httpserver.AuthHTTP{Svc: svc},
		TokenGuard:   &middleware.TokenGuard{Tokens: svc.Tokens},
		SessionGuard: &middleware.SessionGuard{Svc: svc},
		Mode:         cfg.AuthMode,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "mode", string(cfg.AuthMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildStores picks the backing store for users and sessions. The demo
// memory stores are the default; sqlite and postgres share the gorm
// implementations.
func buildStores(ctx context.Context, cfg config.Config) (store.UserStore, session.Store, error) {
	switch cfg.StoreDriver {
	case "memory", "":
		users := store.NewMemoryStore([]models.User{{
			Name:     cfg.SeedName,
			Username: cfg.SeedUsername,
			Password: cfg.SeedPassword,
		}})
		return users, session.NewMemoryStore(), nil
	case "sqlite", "postgres":
		db, err := store.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		users := &store.GormStore{DB: db}
		if err := users.Seed(ctx, cfg.SeedName, cfg.SeedUsername, cfg.SeedPassword); err != nil {
			return nil, nil, err
		}
		return users, &session.GormStore{DB: db}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// buildAudit assembles the audit sink from whatever backends are
// configured; none configured means a no-op sink.
func buildAudit(cfg config.Config) (events.Sink, error) {
	var sinks events.Multi
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, events.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic))
	}
	if cfg.ESURL != "" {
		es, err := events.NewESSink(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, es)
	}
	if len(sinks) == 0 {
		return events.Noop{}, nil
	}
	return sinks, nil
}
