package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"example.com/workout/internal/config"
	"example.com/workout/internal/domain"
	"example.com/workout/internal/logging"
	"example.com/workout/internal/report"
	"example.com/workout/internal/training"
)

func main() {
	input := flag.String("input", "", "path to a JSON array of packages; built-in samples when empty")
	flag.Parse()

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "workout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	packages, err := loadPackages(*input)
	if err != nil {
		logger.Fatal("failed to load packages", zap.String("input", *input), zap.Error(err))
	}

	service := domain.NewService(domain.WithLogger(logger), domain.WithFailFast(cfg.FailFast))
	code := run(ctx, os.Stdout, service, packages, logger)
	if code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}
}

func run(ctx context.Context, out io.Writer, service *domain.Service, packages []domain.Package, logger *zap.Logger) int {
	rep, err := service.Run(ctx, packages)
	summaries := make([]training.Summary, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		if o.OK() {
			summaries = append(summaries, o.Summary)
		}
	}
	for _, line := range report.Lines(summaries) {
		fmt.Fprintln(out, line)
	}
	if err != nil {
		logger.Error("run aborted", zap.Int("processed", len(rep.Outcomes)), zap.Error(err))
		return 1
	}
	if rep.Failed > 0 {
		logger.Error("some packages were rejected",
			zap.Int("failed", rep.Failed),
			zap.Int("total", len(packages)),
			zap.Error(rep.Err()),
		)
		return 1
	}
	return 0
}

func loadPackages(path string) ([]domain.Package, error) {
	if path == "" {
		return domain.SamplePackages(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return domain.DecodePackages(f)
}
