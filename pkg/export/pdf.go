package export

import (
	"bytes"
	"context"
	"fmt"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PDFRenderer converts rendered HTML into a PDF document.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

type wkhtmlRenderer struct{}

// NewPDFRenderer returns a renderer backed by the wkhtmltopdf binary.
// The binary must be present on the host (WKHTMLTOPDF_PATH overrides
// the lookup).
func NewPDFRenderer() PDFRenderer {
	return &wkhtmlRenderer{}
}

func (r *wkhtmlRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}

	pdfg.Dpi.Set(150)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(12)
	pdfg.MarginBottom.Set(12)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
	page.DisableExternalLinks.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return pdfg.Bytes(), nil
}
