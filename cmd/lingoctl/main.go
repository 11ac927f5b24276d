package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lingodesk/internal/config"
	"github.com/kailas-cloud/lingodesk/internal/controller"
	logpkg "github.com/kailas-cloud/lingodesk/internal/logger"
	cliTransport "github.com/kailas-cloud/lingodesk/internal/transport/cli"
	documentuc "github.com/kailas-cloud/lingodesk/internal/usecase/document"
	healthuc "github.com/kailas-cloud/lingodesk/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lingodesk/internal/usecase/search"
	speechuc "github.com/kailas-cloud/lingodesk/internal/usecase/speech"
	translateuc "github.com/kailas-cloud/lingodesk/internal/usecase/translate"
	websearchuc "github.com/kailas-cloud/lingodesk/internal/usecase/websearch"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

func main() {
	root := cliTransport.NewRootCommand(buildApp)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, cliTransport.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// buildApp wires the backend client and services from config and flags.
// A missing config file falls back to built-in defaults.
func buildApp(cmd *cobra.Command, g cliTransport.Globals) (*cliTransport.App, error) {
	env := g.Env
	if env == "" {
		env = config.GetEnv()
	}
	cfg, err := config.LoadOrDefault(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.BackendURL != "" {
		cfg.Backend.BaseURL = g.BackendURL
	}

	logger, err := logpkg.NewCLILogger(g.Verbose)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), logger))

	client, err := backend.New(cfg.Backend.BaseURL,
		backend.WithTimeout(time.Duration(cfg.Backend.TimeoutSec)*time.Second),
		backend.WithUserAgent(cfg.Backend.UserAgent),
		backend.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	speechSvc := speechuc.New(client)
	searchSvc := searchuc.New(client)
	ctrl := controller.New(
		translateuc.New(client),
		documentuc.New(client).WithMaxFileSize(cfg.UI.MaxUploadBytes),
		searchSvc,
		websearchuc.New(client),
		speechSvc,
	).WithLimits(controller.Limits{
		DefaultTopK:     cfg.UI.DefaultTopK,
		MaxTopK:         cfg.UI.MaxTopK,
		DefaultWebLimit: cfg.UI.DefaultWebLimit,
		MaxWebLimit:     cfg.UI.MaxWebLimit,
		SpeechRate:      cfg.UI.SpeechRate,
		SpeechPitch:     cfg.UI.SpeechPitch,
	})

	return &cliTransport.App{
		Controller: ctrl,
		Voices:     speechSvc,
		Index:      searchSvc,
		Health:     healthuc.New(client, nil),
	}, nil
}
