package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maltedev/product-qa/internal/models"
	"github.com/maltedev/product-qa/internal/parser"
)

// Service runs the extraction pipeline: fetch once, parse, return a fresh
// record. Nothing is cached between calls.
type Service struct {
	fetcher Fetcher
	parser  parser.Parser
	logger  *slog.Logger
}

func NewService(fetcher Fetcher, p parser.Parser, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		parser:  p,
		logger:  logger.With("component", "scraper"),
	}
}

func (s *Service) ScrapeProduct(ctx context.Context, url string) (*models.ProductRecord, error) {
	start := time.Now()
	s.logger.Info("scraping product", "url", url)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("failed to fetch product page", "url", url, "error", err)
		return nil, err
	}

	product, err := s.parser.ParseProductPage(html)
	if err != nil {
		s.logger.Warn("failed to extract product", "url", url, "error", err)
		return nil, err
	}
	product.URL = url

	if issues := product.Validate(); len(issues) > 0 {
		s.logger.Warn("incomplete product record", "url", url, "issues", issues)
		return nil, fmt.Errorf("%w: %s", ErrIncompleteRecord, strings.Join(issues, "; "))
	}

	s.logger.Info("scraped product",
		"url", url,
		"title", product.Title,
		"features", len(product.Features),
		"specs", len(product.Specs)/2,
		"images", len(product.Images),
		"duration", time.Since(start),
	)

	return product, nil
}
