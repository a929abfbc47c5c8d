package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samovar-labs/habr-harvester/internal/app"
	"github.com/samovar-labs/habr-harvester/internal/config"
	"github.com/samovar-labs/habr-harvester/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "collector start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	withComments := flag.Bool("comments", true, "also harvest the comment thread of each article")
	flag.Parse()

	articleURLs := flag.Args()
	if len(articleURLs) == 0 {
		return fmt.Errorf("usage: collector [-comments=false] <article-url> [<article-url> ...]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("collector starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector, err := app.NewCollector(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize collector", "error", err)
		return err
	}

	summary, err := collector.Run(ctx, articleURLs, *withComments)
	if err != nil {
		return fmt.Errorf("collector run: %w", err)
	}

	fmt.Printf("articles: %d/%d ok, %d records; comments: %d/%d ok, %d records\n",
		summary.Articles.Succeeded, summary.Articles.Attempted, summary.Articles.Records,
		summary.Comments.Succeeded, summary.Comments.Attempted, summary.Comments.Records)
	return nil
}
