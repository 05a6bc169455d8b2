// Package slog provides logging decorators for mensa interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mensa-dev/mensa"
)

// Ensure LoggingFetcher implements mensa.Fetcher.
var _ mensa.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   mensa.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mensa.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	page, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(page), "duration", time.Since(begin))
	return page, nil
}

// FetchBytes delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	body, err := f.next.FetchBytes(ctx, url)
	if err != nil {
		f.logger.Error("fetch bytes", "url", url, "duration", time.Since(begin), "err", err)
		return nil, err
	}
	f.logger.Info("fetch bytes", "url", url, "bytes", len(body), "duration", time.Since(begin))
	return body, nil
}
