package scraper

import (
	"context"
	"log/slog"

	"github.com/maltedev/product-qa/internal/browser"
)

// BrowserFetcher renders the page in headless Chromium before handing the
// markup to the parser. Used for listings whose prices are filled in by
// script.
type BrowserFetcher struct {
	browser *browser.Browser
	logger  *slog.Logger
}

func NewBrowserFetcher(b *browser.Browser, logger *slog.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		browser: b,
		logger:  logger.With("component", "browser_fetcher"),
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	page, err := f.browser.NewPage()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer page.Close()

	if err := f.browser.Navigate(page, url); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	html, err := page.Content()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if html == "" {
		return "", &FetchError{URL: url, Err: ErrEmptyPage}
	}

	f.logger.Debug("rendered product page", "url", url, "bytes", len(html))
	return html, nil
}

func (f *BrowserFetcher) Close() error {
	return f.browser.Close()
}
