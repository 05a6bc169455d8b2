package mock

import (
	"context"

	"github.com/mensa-dev/mensa"
)

var _ mensa.WeekWriter = (*WeekWriter)(nil)

// WeekWriter is a mock implementation of mensa.WeekWriter.
type WeekWriter struct {
	WriteWeeksFn func(ctx context.Context, weeks map[mensa.WeekKey]*mensa.Week) error
}

func (w *WeekWriter) WriteWeeks(ctx context.Context, weeks map[mensa.WeekKey]*mensa.Week) error {
	return w.WriteWeeksFn(ctx, weeks)
}
