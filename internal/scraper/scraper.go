package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/maltedev/product-qa/internal/models"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrEmptyPage        = errors.New("empty page body")
	ErrIncompleteRecord = errors.New("product record failed validation")
)

// Fetcher retrieves the raw markup of a product page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Scraper interface {
	ScrapeProduct(ctx context.Context, url string) (*models.ProductRecord, error)
}

// FetchError reports a failure to reach the product URL. StatusCode is zero
// when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
