package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/keibaapi/config"
	"github.com/padraicbc/keibaapi/db"
	"github.com/padraicbc/keibaapi/handlers"
	applog "github.com/padraicbc/keibaapi/logger"
	"github.com/padraicbc/keibaapi/metrics"
	mw "github.com/padraicbc/keibaapi/middleware"
	"github.com/padraicbc/keibaapi/report"
	"github.com/padraicbc/keibaapi/repository"
	"github.com/padraicbc/keibaapi/stats"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	bdb, err := db.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	store := repository.NewBunStore(bdb)
	reporter := report.New(store, cfg.StatsCacheTTL, logger)
	h := handlers.New(store, reporter, handlers.Options{
		JWTKey:           cfg.JWTKey(),
		StatsDefaultDays: cfg.StatsDefaultDays,
		Plan: stats.PlanConfig{
			PlaceTiers: cfg.PlanPlaceTiers,
			UnitStake:  cfg.PlanUnitStake,
		},
		IsAdmin: cfg.IsAdmin,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))
	e.Use(metrics.Middleware())

	// Public
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/races/dates", h.Dates)
	api.GET("/races", h.Races)
	api.GET("/races/:id", h.Race)
	api.GET("/races/:id/navigation", h.Navigation)
	api.GET("/races/:id/plan", h.Plan)
	api.GET("/statistics", h.Statistics)
	api.POST("/password-hash", h.PasswordHash)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
