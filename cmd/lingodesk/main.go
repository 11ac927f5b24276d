package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/config"
	"github.com/kailas-cloud/lingodesk/internal/controller"
	"github.com/kailas-cloud/lingodesk/internal/db"
	"github.com/kailas-cloud/lingodesk/internal/db/memory"
	dbValkey "github.com/kailas-cloud/lingodesk/internal/db/valkey"
	logpkg "github.com/kailas-cloud/lingodesk/internal/logger"
	"github.com/kailas-cloud/lingodesk/internal/metrics"
	sessionrepo "github.com/kailas-cloud/lingodesk/internal/repository/session"
	webTransport "github.com/kailas-cloud/lingodesk/internal/transport/web"
	documentuc "github.com/kailas-cloud/lingodesk/internal/usecase/document"
	healthuc "github.com/kailas-cloud/lingodesk/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lingodesk/internal/usecase/search"
	speechuc "github.com/kailas-cloud/lingodesk/internal/usecase/speech"
	translateuc "github.com/kailas-cloud/lingodesk/internal/usecase/translate"
	websearchuc "github.com/kailas-cloud/lingodesk/internal/usecase/websearch"
	"github.com/kailas-cloud/lingodesk/internal/version"
	"github.com/kailas-cloud/lingodesk/internal/view"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lingodesk web server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_url", cfg.Backend.BaseURL),
		zap.String("session_driver", cfg.Session.Driver),
	)

	// Session store based on driver
	var store db.Store
	switch cfg.Session.Driver {
	case "valkey":
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Session.Addrs,
			Username: cfg.Session.Username,
			Password: cfg.Session.Password,
			DB:       cfg.Session.DB,
		})
	case "memory":
		store = memory.NewStore()
	default:
		logger.Fatal("Unknown session driver", zap.String("driver", cfg.Session.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Session.ReadinessSec)*time.Second); err != nil {
		logger.Fatal("Session store not ready", zap.Error(err))
	}
	logger.Info("Session store ready")

	// Register UI metrics explicitly (no init())
	metrics.RegisterUIMetrics()

	client, err := backend.New(cfg.Backend.BaseURL,
		backend.WithTimeout(time.Duration(cfg.Backend.TimeoutSec)*time.Second),
		backend.WithUserAgent(cfg.Backend.UserAgent),
		backend.WithLogger(logger),
		backend.WithPrometheus(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logger.Fatal("Invalid backend URL", zap.Error(err))
	}

	// Use case services
	translateSvc := translateuc.New(client)
	documentSvc := documentuc.New(client).WithMaxFileSize(cfg.UI.MaxUploadBytes)
	searchSvc := searchuc.New(client)
	webSearchSvc := websearchuc.New(client)
	speechSvc := speechuc.New(client)
	healthSvc := healthuc.New(client, store)

	ctrl := controller.New(translateSvc, documentSvc, searchSvc, webSearchSvc, speechSvc).
		WithLimits(controller.Limits{
			DefaultTopK:     cfg.UI.DefaultTopK,
			MaxTopK:         cfg.UI.MaxTopK,
			DefaultWebLimit: cfg.UI.DefaultWebLimit,
			MaxWebLimit:     cfg.UI.MaxWebLimit,
			SpeechRate:      cfg.UI.SpeechRate,
			SpeechPitch:     cfg.UI.SpeechPitch,
		})

	sessions := sessionrepo.New(store, sessionrepo.Config{
		Driver:    cfg.Session.Driver,
		KeyPrefix: cfg.Session.KeyPrefix,
		TTL:       time.Duration(cfg.Session.TTLSec) * time.Second,
		LockTTL:   time.Duration(cfg.Session.LockTTLSec) * time.Second,
	})

	renderer, err := view.New()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	server := webTransport.NewServer(ctrl, sessions, healthSvc, renderer, webTransport.Options{
		Cookie: webTransport.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
			MaxAge: time.Duration(cfg.Session.TTLSec) * time.Second,
		},
		PreviewRunes:   cfg.UI.PreviewRunes,
		NoticeTTL:      time.Duration(cfg.UI.NoticeTTLSec) * time.Second,
		MaxUploadBytes: documentSvc.MaxFileSize(),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
