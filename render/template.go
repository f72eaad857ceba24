package render

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// probeTemplate checks the template is a parseable single-page PDF and
// returns its page size in points.
func probeTemplate(path string) (w, h float64, err error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read template PDF: %w", err)
	}
	if ctx.PageCount != 1 {
		return 0, 0, fmt.Errorf("template must have exactly 1 page, got %d", ctx.PageCount)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read template page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return 0, 0, fmt.Errorf("template has no page dimensions")
	}
	return dims[0].Width, dims[0].Height, nil
}
