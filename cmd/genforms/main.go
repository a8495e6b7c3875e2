// Command genforms renders the EIEL water deposit and public works field forms
// for every municipality of the province.
//
// It runs once and exits: load templates, create the output directory, load
// the optional name map, open one database connection, then write
// agua_<mun>.html and obras_<mun>.html per municipality. Configuration comes
// from environment variables; see internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/eiel-forms/internal/adapter/filesystem"
	kafkaadapter "github.com/couchcryptid/eiel-forms/internal/adapter/kafka"
	"github.com/couchcryptid/eiel-forms/internal/adapter/postgres"
	"github.com/couchcryptid/eiel-forms/internal/adapter/render"
	"github.com/couchcryptid/eiel-forms/internal/config"
	"github.com/couchcryptid/eiel-forms/internal/namemap"
	"github.com/couchcryptid/eiel-forms/internal/observability"
	"github.com/couchcryptid/eiel-forms/internal/pipeline"
)

const pushTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("form generation failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer, err := render.New(cfg.TemplateDir, cfg.TemplateWater, cfg.TemplateWorks,
		render.WithGlobals(map[string]any{
			"url_apps_script":  cfg.URLAppsScript,
			"url_google_forms": cfg.URLGoogleForms,
		}))
	if err != nil {
		return err
	}

	sink, err := filesystem.NewDirWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	names, err := namemap.Load(cfg.MunicipalitiesTSV)
	if err != nil {
		return err
	}
	logger.Info("municipality name map loaded", "entries", len(names), "path", cfg.MunicipalitiesTSV)

	metrics := observability.NewMetrics()

	var opts []pipeline.Option
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithNotifier(writer))
		logger.Info("forms events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	store, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	p := pipeline.New(store, renderer, sink, names, logger, metrics, opts...)
	_, runErr := p.Run(ctx)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, "eiel_forms"); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	return runErr
}
