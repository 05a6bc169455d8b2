package mensa

import "context"

// PDFConverter converts PDF documents to layout-preserving plain text.
// The text must keep columns aligned by literal space characters so that
// column segmentation can infer weekday boundaries from anchor positions.
type PDFConverter interface {
	// Convert returns the plain text of the document.
	Convert(ctx context.Context, pdf []byte) (string, error)

	// ConvertFirstPage returns the plain text of the first page only.
	ConvertFirstPage(ctx context.Context, pdf []byte) (string, error)
}
