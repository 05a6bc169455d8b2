// Package pdftotext converts PDF documents to layout-preserving text by
// invoking the external pdftotext binary.
package pdftotext

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mensa-dev/mensa"
)

// Ensure Converter implements mensa.PDFConverter at compile time.
var _ mensa.PDFConverter = (*Converter)(nil)

// Converter shells out to pdftotext with the -layout flag so that the menu
// tables keep their column alignment. Each conversion uses a private
// temporary directory that is removed on every exit path.
type Converter struct {
	// Binary is the executable to invoke. Empty means "pdftotext" from
	// PATH.
	Binary string
}

// NewConverter creates a converter using the pdftotext binary from PATH.
func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return "pdftotext"
}

// Convert returns the plain text of the whole document.
func (c *Converter) Convert(ctx context.Context, pdf []byte) (string, error) {
	return c.convert(ctx, pdf)
}

// ConvertFirstPage returns the plain text of the first page only. The
// weekly flyers carry the menu on page one; later pages hold unrelated
// notices that would confuse column detection.
func (c *Converter) ConvertFirstPage(ctx context.Context, pdf []byte) (string, error) {
	return c.convert(ctx, pdf, "-l", "1")
}

func (c *Converter) convert(ctx context.Context, pdf []byte, extraArgs ...string) (string, error) {
	dir, err := os.MkdirTemp("", "mensa-pdftotext-")
	if err != nil {
		return "", mensa.Errorf(mensa.EINTERNAL, "pdftotext: creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "menu.pdf")
	txtPath := filepath.Join(dir, "menu.txt")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return "", mensa.Errorf(mensa.EINTERNAL, "pdftotext: writing temp pdf: %v", err)
	}

	args := append(append([]string{}, extraArgs...), "-layout", pdfPath, txtPath)
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", mensa.Errorf(mensa.EUNAVAILABLE, "pdftotext: %v: %s", err, strings.TrimSpace(string(out)))
	}

	text, err := os.ReadFile(txtPath)
	if err != nil {
		return "", mensa.Errorf(mensa.EINTERNAL, "pdftotext: reading converted text: %v", err)
	}
	return string(text), nil
}
