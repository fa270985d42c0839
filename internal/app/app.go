package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/maltedev/product-qa/internal/browser"
	"github.com/maltedev/product-qa/internal/cache"
	"github.com/maltedev/product-qa/internal/config"
	"github.com/maltedev/product-qa/internal/inference"
	"github.com/maltedev/product-qa/internal/models"
	"github.com/maltedev/product-qa/internal/parser"
	"github.com/maltedev/product-qa/internal/qa"
	"github.com/maltedev/product-qa/internal/scraper"
	"github.com/maltedev/product-qa/internal/spelling"
	"github.com/maltedev/product-qa/internal/tokenizer"
)

// App holds the wired extraction and question answering components.
type App struct {
	Scraper  scraper.Scraper
	Pipeline *qa.Pipeline
	Model    *inference.Client

	logger  *slog.Logger
	closers []func() error
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	fetcher, err := a.newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	a.Scraper = scraper.NewService(fetcher, parser.NewAmazonParser(), logger)

	a.Model = inference.NewClient(&http.Client{Timeout: cfg.Model.Timeout}, cfg.Model.InferenceURL, logger)

	tok := cache.NewLazy(cfg.Model.CacheTTL, func(ctx context.Context) (qa.Tokenizer, error) {
		logger.Info("loading tokenizer", "vocab", cfg.Model.VocabPath)
		w, err := tokenizer.Load(cfg.Model.VocabPath, cfg.Model.MaxSequenceLen)
		if err != nil {
			return nil, err
		}
		logger.Info("tokenizer loaded", "max_sequence_length", w.MaxSequenceLength())
		return w, nil
	})

	model := cache.NewLazy(cfg.Model.CacheTTL, func(ctx context.Context) (inference.SpanPredictor, error) {
		logger.Info("connecting to model server", "url", cfg.Model.InferenceURL)
		if err := a.Model.Health(ctx); err != nil {
			return nil, err
		}
		return a.Model, nil
	})

	corrector := cache.NewLazy(cfg.Model.CacheTTL, func(ctx context.Context) (spelling.Corrector, error) {
		return spelling.Load(cfg.Spelling.DictionaryPath, spelling.Options{
			Depth:     cfg.Spelling.Depth,
			Threshold: cfg.Spelling.Threshold,
		}, logger)
	})

	a.Pipeline = qa.NewPipeline(tok, model, corrector, logger)
	return a, nil
}

func (a *App) newFetcher(cfg *config.Config) (scraper.Fetcher, error) {
	switch cfg.Fetch.Mode {
	case config.FetchModeBrowser:
		opts := browser.DefaultOptions()
		opts.Headless = cfg.Browser.Headless
		opts.Timeout = cfg.Browser.Timeout
		opts.UserAgent = cfg.Fetch.UserAgent
		opts.ViewportWidth = cfg.Browser.ViewportWidth
		opts.ViewportHeight = cfg.Browser.ViewportHeight
		opts.Locale = cfg.Browser.Locale
		opts.ExtraHeaders["Accept-Language"] = cfg.Browser.AcceptLanguage

		b, err := browser.New(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
		fetcher := scraper.NewBrowserFetcher(b, a.logger)
		a.closers = append(a.closers, fetcher.Close)
		return fetcher, nil
	case config.FetchModeHTTP:
		client := &http.Client{Timeout: cfg.Fetch.Timeout}
		return scraper.NewHTTPFetcher(client, cfg.Fetch.UserAgent, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", cfg.Fetch.Mode)
	}
}

// Ask scrapes the product page and answers one question against it.
func (a *App) Ask(ctx context.Context, url, question string) (*models.ProductRecord, *models.QAResult, error) {
	product, err := a.Scraper.ScrapeProduct(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	result, err := a.Pipeline.Answer(ctx, product.Context, question)
	if err != nil {
		return product, nil, err
	}
	return product, result, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
