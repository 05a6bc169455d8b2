package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mensa-dev/mensa"
)

// Ensure LoggingSource implements mensa.MenuSource.
var _ mensa.MenuSource = (*LoggingSource)(nil)

// LoggingSource wraps a MenuSource with extraction logging.
type LoggingSource struct {
	next   mensa.MenuSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next mensa.MenuSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Name delegates to the wrapped source.
func (s *LoggingSource) Name() string {
	return s.next.Name()
}

// Menus delegates to the wrapped source and logs the outcome.
func (s *LoggingSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	begin := time.Now()
	menus, err := s.next.Menus(ctx)
	if err != nil {
		s.logger.Error("extract menus", "source", s.next.Name(), "duration", time.Since(begin), "err", err)
		return nil, err
	}
	s.logger.Info("extract menus", "source", s.next.Name(), "menus", len(menus), "duration", time.Since(begin))
	return menus, nil
}
