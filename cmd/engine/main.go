package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Victor-armando18/service-bspaoh/internal/config"
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	badgerstore "github.com/Victor-armando18/service-bspaoh/internal/infrastructure/badger"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/memory"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/postgres"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
	"github.com/Victor-armando18/service-bspaoh/internal/logging"
	"github.com/Victor-armando18/service-bspaoh/internal/usecase"
	"github.com/Victor-armando18/service-bspaoh/internal/usecase/readiness"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BSPAOH_CONFIG"))
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := badgerstore.Open(cfg.Storage.BadgerPath, cfg.Storage.InMemory)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	dir, users, err := registry(cfg.Registry, logger)
	if err != nil {
		return err
	}

	eng, err := interfaces.NewEngine(ctx, cfg.Rules.Version, dir, logger)
	if err != nil {
		return err
	}

	h := &handlers{
		svc:          usecase.NewBspaohService(repo, eng, users, logger),
		readiness:    &readiness.UseCase{Repository: repo, Validator: eng},
		rulesVersion: eng.RulesVersion(),
		logger:       logger,
	}
	e := newServer(h)

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "http server starting", "port", cfg.HTTP.Port, "rules", cfg.Rules.Version)
		errc <- e.Start(fmt.Sprintf(":%d", cfg.HTTP.Port))
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	level.Info(logger).Log("msg", "http server stopping")
	return e.Shutdown(shutdownCtx)
}

func newServer(h *handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodPatch, http.MethodOptions, http.MethodGet},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, headerUserID},
	}))

	e.POST("/bspaohs", h.create)
	e.GET("/bspaohs/:id", h.get)
	e.PATCH("/bspaohs/:id", h.update)
	e.POST("/bspaohs/:id/publish", h.publish)
	e.POST("/bspaohs/:id/duplicate", h.duplicate)
	e.POST("/bspaohs/:id/sign", h.sign)
	e.GET("/bspaohs/:id/sealed-fields", h.sealedFields)
	e.GET("/bspaohs/:id/readiness", h.checkReadiness)
	e.GET("/rules", h.rules)
	return e
}

// registry escolhe o diretório de empresas: Postgres quando há DSN, senão memória (opcionalmente com seed).
func registry(cfg config.RegistryConfig, logger log.Logger) (domain.CompanyDirectory, domain.UserResolver, error) {
	if cfg.PostgresDSN != "" {
		db, err := postgres.Connect(cfg.PostgresDSN, 5, logger)
		if err != nil {
			return nil, nil, err
		}
		dir := postgres.NewDirectory(db, logger)
		if err := dir.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate registry: %w", err)
		}
		return dir, dir, nil
	}
	if cfg.SeedFile != "" {
		dir, users, err := memory.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		return dir, users, nil
	}
	level.Warn(logger).Log("msg", "no registry configured, using an empty in-memory directory")
	return memory.NewDirectory(), memory.NewUsers(), nil
}
