package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// DefaultHeaders is the browser-like header set sent with every product page
// request. Accept-Encoding is left to the transport so gzip bodies are
// decoded transparently.
func DefaultHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"DNT":                       "1",
		"Upgrade-Insecure-Requests": "1",
	}
}

// HTTPFetcher issues a single GET per call. There are no retries and no
// timeout beyond what the client and context carry.
type HTTPFetcher struct {
	client  *http.Client
	headers map[string]string
	logger  *slog.Logger
}

func NewHTTPFetcher(client *http.Client, userAgent string, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{
		client:  client,
		headers: DefaultHeaders(userAgent),
		logger:  logger.With("component", "http_fetcher"),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}
	req.Close = true

	f.logger.Debug("fetching product page", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if len(body) == 0 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Err: ErrEmptyPage}
	}

	f.logger.Debug("fetched product page", "url", url, "bytes", len(body))
	return string(body), nil
}
