package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func main() {
	cfg, err := config.Load[Config]()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg, os.Stdout)
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg Config, out io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(out),
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(requestID, requestLang),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	return logger.New(opts...)
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	forms, err := loadForms(cfg.FormsFile)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.MessagesFile, log)
	if err != nil {
		return err
	}
	log.Info("forms loaded", slog.Int("count", len(forms)), slog.Any("languages", catalog.Languages()))

	v := &validator{forms: forms, catalog: catalog, log: log, maxMemory: cfg.MaxMemory}
	srv := httpserver.NewFromConfig(cfg.Config, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(v))
}

func loadForms(path string) (map[string]*form.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open forms file: %w", err)
	}
	defer f.Close()
	return rules.LoadForms(f, rules.Default)
}

func loadCatalog(path string, log *slog.Logger) (*i18n.Catalog, error) {
	catalog := i18n.NewCatalog(i18n.WithLogger(log))
	if path == "" {
		return catalog, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open messages file: %w", err)
	}
	defer f.Close()
	if err := catalog.LoadYAML(f); err != nil {
		return nil, err
	}
	return catalog, nil
}
