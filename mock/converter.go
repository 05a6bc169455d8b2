package mock

import (
	"context"

	"github.com/mensa-dev/mensa"
)

var _ mensa.PDFConverter = (*PDFConverter)(nil)

// PDFConverter is a mock implementation of mensa.PDFConverter.
type PDFConverter struct {
	ConvertFn          func(ctx context.Context, pdf []byte) (string, error)
	ConvertFirstPageFn func(ctx context.Context, pdf []byte) (string, error)
}

func (c *PDFConverter) Convert(ctx context.Context, pdf []byte) (string, error) {
	return c.ConvertFn(ctx, pdf)
}

func (c *PDFConverter) ConvertFirstPage(ctx context.Context, pdf []byte) (string, error) {
	return c.ConvertFirstPageFn(ctx, pdf)
}
