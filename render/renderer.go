// Package render produces the printable board PDF from a validated
// announcement. Two strategies exist, mirroring how the board template may
// be authored: the default overlay strategy draws shaped text directly onto
// the imported template page, the acroform strategy fills interactive form
// fields and leaves text shaping to the viewer.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/signintech/gopdf"

	"github.com/mazadly/boardgen/board"
)

// Render strategies.
const (
	StrategyOverlay  = "overlay"
	StrategyAcroForm = "acroform"
)

// Options configures a Renderer.
type Options struct {
	TemplatePath string
	FontsDir     string
	Strategy     string
}

// Renderer renders announcement boards from a single template file. It is
// stateless after construction and safe for concurrent use.
type Renderer struct {
	opts  Options
	pageW float64
	pageH float64
}

// New validates the options and pre-flights the template file: it must be a
// readable single-page PDF at (or near) board print size.
func New(opts Options) (*Renderer, error) {
	switch opts.Strategy {
	case "":
		opts.Strategy = StrategyOverlay
	case StrategyOverlay, StrategyAcroForm:
	default:
		return nil, fmt.Errorf("unknown render strategy %q", opts.Strategy)
	}

	if _, err := os.Stat(opts.TemplatePath); err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	if opts.Strategy == StrategyOverlay {
		if err := CheckFonts(opts.FontsDir); err != nil {
			return nil, fmt.Errorf("failed to check fonts directory: %w", err)
		}
	}

	w, h, err := probeTemplate(opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to validate template: %w", err)
	}
	if !SizeMatchesBoard(w, h) {
		slog.Warn("Template page size differs from 4m x 2m board", "width_pt", w, "height_pt", h)
	}

	return &Renderer{opts: opts, pageW: w, pageH: h}, nil
}

// Render validates the announcement and produces the board PDF. Validation
// failures are returned as *board.ValidationError.
func (r *Renderer) Render(ctx context.Context, a *board.Announcement) ([]byte, error) {
	if err := board.Validate(a); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.opts.Strategy == StrategyAcroForm {
		return r.renderAcroForm(ctx, a)
	}
	return r.renderOverlay(ctx, a)
}

// RENDER (overlay)
//  1. Import the template page as the backdrop
//  2. Embed the Arabic fonts
//  3. Draw every field at its slot, shaped into visual order
//  4. Place logo and QR code
//  5. Serialize
func (r *Renderer) renderOverlay(ctx context.Context, a *board.Announcement) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: r.pageW, H: r.pageH}})

	if err := registerFonts(pdf, r.opts.FontsDir); err != nil {
		return nil, err
	}

	pdf.AddPage()
	tpl := pdf.ImportPage(r.opts.TemplatePath, 1, "/MediaBox")
	pdf.UseImportedTemplate(tpl, 0, 0, r.pageW, r.pageH)

	pdf.SetTextColor(20, 24, 31)

	values := a.Values()
	for _, spec := range board.Schema {
		value := values[spec.Key]
		if value == "" {
			continue
		}
		slot, ok := SlotFor(spec.Key)
		if !ok {
			continue
		}
		if err := drawField(pdf, spec, slot, value); err != nil {
			return nil, fmt.Errorf("failed to draw field %s: %w", spec.Key, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.placeImages(pdf, a); err != nil {
		return nil, err
	}

	return pdf.GetBytesPdf(), nil
}

func drawField(pdf *gopdf.GoPdf, spec board.FieldSpec, slot TextSlot, value string) error {
	lines := []string{value}
	if spec.Lines == 2 {
		lines = board.SplitLines(value)
	}

	lineH := slot.Box.H
	if len(lines) == 2 {
		lineH = (slot.Box.H - slot.LineGap) / 2
	}

	if err := pdf.SetFont(spec.Font, "", slot.FontSize); err != nil {
		return fmt.Errorf("failed to set font %s: %w", spec.Font, err)
	}

	opt := gopdf.CellOption{Align: gopdf.Center | gopdf.Middle}
	if slot.Align == AlignRight {
		opt.Align = gopdf.Right | gopdf.Middle
	}

	for i, line := range lines {
		pdf.SetXY(slot.Box.X, slot.Box.Y+float64(i)*(lineH+slot.LineGap))
		err := pdf.CellWithOption(&gopdf.Rect{W: slot.Box.W, H: lineH}, ShapeVisual(line), opt)
		if err != nil {
			return fmt.Errorf("failed to draw line %d: %w", i+1, err)
		}
	}
	return nil
}

// placeImages puts the normalized logo and the QR code at their slots,
// scaled to fit and centered.
func (r *Renderer) placeImages(pdf *gopdf.GoPdf, a *board.Announcement) error {
	raw, err := DecodeLogo(a.Logo)
	if err != nil {
		return err
	}
	logo, err := NormalizeLogo(raw, int(logoSlot.W), int(logoSlot.H))
	if err != nil {
		return err
	}
	if err := placeImage(pdf, logo, logoSlot); err != nil {
		return fmt.Errorf("failed to place logo: %w", err)
	}

	qr, err := QRCode(a.AuctionURL, int(qrSlot.W))
	if err != nil {
		return err
	}
	if err := placeImage(pdf, qr, qrSlot); err != nil {
		return fmt.Errorf("failed to place QR code: %w", err)
	}
	return nil
}

func placeImage(pdf *gopdf.GoPdf, img []byte, slot Rect) error {
	w, h, err := pngSize(img)
	if err != nil {
		return err
	}

	scale := slot.W / float64(w)
	if s := slot.H / float64(h); s < scale {
		scale = s
	}
	drawW := float64(w) * scale
	drawH := float64(h) * scale

	holder, err := gopdf.ImageHolderByBytes(img)
	if err != nil {
		return fmt.Errorf("failed to create image holder: %w", err)
	}

	x := slot.X + (slot.W-drawW)/2
	y := slot.Y + (slot.H-drawH)/2
	if err := pdf.ImageByHolder(holder, x, y, &gopdf.Rect{W: drawW, H: drawH}); err != nil {
		return fmt.Errorf("failed to draw image: %w", err)
	}
	return nil
}
