package main

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"wikibot/internal/config"
	"wikibot/internal/domain"
	"wikibot/internal/fetcher"
	"wikibot/internal/logger"
	"wikibot/internal/normalizer"
	"wikibot/internal/ranker"
	"wikibot/internal/service"
	"wikibot/internal/splitter"
	"wikibot/internal/summarizer"
)

// app holds the components shared by every session of one process.
type app struct {
	cfg     *config.AppConfig
	log     *zap.Logger
	fetcher *fetcher.Client
	newBot  func() *service.Bot
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}

// newApp assembles components from config. console receives log output in
// addition to the log file; pass nil when a TUI owns the terminal.
func newApp(cfgPath string, console io.Writer) (*app, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log, console)
	if err != nil {
		return nil, err
	}

	red, err := normalizer.NewReducer(cfg.Normalizer.Reducer)
	if err != nil {
		return nil, err
	}
	norm := normalizer.New(red)

	sp, err := splitter.New(cfg.Splitter.Type)
	if err != nil {
		return nil, err
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		sum = summarizer.NewFrequencySummarizer(norm)
	case "none":
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	fc, err := fetcher.New(fetcher.Config{
		BaseURL:    cfg.Fetcher.BaseURL,
		UserAgent:  cfg.Fetcher.UserAgent,
		Extractor:  cfg.Fetcher.Extractor,
		Timeout:    time.Duration(cfg.Fetcher.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetcher.MaxRetries,
	}, log)
	if err != nil {
		return nil, err
	}

	rk := ranker.New(norm)
	log.Debug("components ready",
		zap.String("splitter", cfg.Splitter.Type),
		zap.String("reducer", red.Name()),
		zap.String("extractor", cfg.Fetcher.Extractor),
	)
	return &app{
		cfg:     cfg,
		log:     log,
		fetcher: fc,
		newBot: func() *service.Bot {
			return service.NewBot(fc, sp, rk, sum, cfg.Summarizer.MaxSentences, log)
		},
	}, nil
}

// fetchBudget bounds a whole topic fetch including retries.
func (a *app) fetchBudget() time.Duration {
	return time.Duration(a.cfg.Fetcher.TimeoutSecs*(a.cfg.Fetcher.MaxRetries+1)) * time.Second
}
