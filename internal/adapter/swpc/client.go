// Package swpc retrieves forecast products from the NOAA Space Weather
// Prediction Center text services.
package swpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

const userAgent = "aurora-forecast-etl/1.0 (+https://www.swpc.noaa.gov/)"

// maxBodyBytes caps a forecast download. The nowcast is about 2 MiB.
const maxBodyBytes = 32 << 20

// Client fetches raw forecast text over HTTP. It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client whose requests give up after timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs a single GET against url and returns the body as text.
// Every failure is reported as a *domain.FetchError; there is no retry.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain")
	// Setting Accept-Encoding ourselves disables the transport's transparent
	// decompression, so gzip bodies are decoded below.
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", &domain.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	body, err := readBody(resp)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	if !utf8.Valid(body) {
		return "", &domain.FetchError{URL: url, Err: errors.New("response body is not valid UTF-8 text")}
	}

	c.logger.Debug("forecast downloaded",
		"url", url,
		"bytes", len(body),
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"duration", time.Since(start),
	)
	return string(body), nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}
	return body, nil
}
