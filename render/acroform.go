package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mazadly/boardgen/board"
)

// pdfcpu form-fill JSON payload.
type formTextField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type formPage struct {
	TextFields []formTextField `json:"textfield"`
}

type formFill struct {
	Forms []formPage `json:"forms"`
}

// RENDER (acroform)
//  1. Fill the template's interactive text fields
//  2. Set NeedAppearances and drop widget appearance streams, so viewers
//     regenerate them with their own Arabic shaping engine
//  3. Stamp logo and QR code
func (r *Renderer) renderAcroForm(ctx context.Context, a *board.Announcement) ([]byte, error) {
	filled, err := r.fillFields(a)
	if err != nil {
		return nil, err
	}

	rebuilt, err := forceAppearanceRebuild(filled)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.stampImages(rebuilt, a)
}

func (r *Renderer) fillFields(a *board.Announcement) (filled []byte, err error) {
	page := formPage{}
	values := a.Values()
	for _, spec := range board.Schema {
		value := values[spec.Key]
		if value == "" {
			continue
		}
		if spec.Lines == 2 {
			value = strings.Join(board.SplitLines(value), "\n")
		}
		page.TextFields = append(page.TextFields, formTextField{
			Name:  spec.Key,
			Value: WrapRTL(value),
		})
	}

	data, err := json.Marshal(formFill{Forms: []formPage{page}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form fill data: %w", err)
	}

	tmpl, err := os.Open(r.opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer func() {
		if closeErr := tmpl.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	var out bytes.Buffer
	if err := api.FillForm(tmpl, bytes.NewReader(data), &out, nil); err != nil {
		return nil, fmt.Errorf("failed to fill form fields: %w", err)
	}
	return out.Bytes(), nil
}

// forceAppearanceRebuild sets the AcroForm NeedAppearances flag and removes
// widget appearance streams. Appearance streams produced without shaping
// show Arabic letters disjoint and left-to-right; without them, viewers must
// rebuild the field appearance and shape the text correctly.
func forceAppearanceRebuild(pdf []byte) ([]byte, error) {
	pdfCtx, err := api.ReadContext(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read filled PDF: %w", err)
	}
	// ReadContext only parses; validation populates the page tree that
	// PageDict below walks.
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("failed to validate filled PDF: %w", err)
	}

	rootDict, err := pdfCtx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get document catalog: %w", err)
	}
	acroObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, errors.New("template has no AcroForm dictionary: use the overlay strategy for flat templates")
	}
	acroDict, err := pdfCtx.DereferenceDict(acroObj)
	if err != nil || acroDict == nil {
		return nil, fmt.Errorf("failed to resolve AcroForm dictionary: %w", err)
	}
	acroDict.Update("NeedAppearances", types.Boolean(true))

	pageDict, _, _, err := pdfCtx.PageDict(1, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dictionary: %w", err)
	}
	if annotsObj, found := pageDict.Find("Annots"); found {
		annots, err := pdfCtx.DereferenceArray(annotsObj)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve page annotations: %w", err)
		}
		for _, obj := range annots {
			d, err := pdfCtx.DereferenceDict(obj)
			if err != nil || d == nil {
				continue
			}
			if subtype := d.NameEntry("Subtype"); subtype != nil && *subtype == "Widget" {
				d.Delete("AP")
			}
		}
	}

	var out bytes.Buffer
	if err := api.WriteContext(pdfCtx, &out); err != nil {
		return nil, fmt.Errorf("failed to write rebuilt PDF: %w", err)
	}
	return out.Bytes(), nil
}

// stampImages places the logo and QR code as image stamps. pdfcpu offsets
// are bottom-left based, so slot coordinates go through FromTop.
func (r *Renderer) stampImages(pdf []byte, a *board.Announcement) ([]byte, error) {
	raw, err := DecodeLogo(a.Logo)
	if err != nil {
		return nil, err
	}
	logo, err := NormalizeLogo(raw, int(logoSlot.W), int(logoSlot.H))
	if err != nil {
		return nil, err
	}
	qr, err := QRCode(a.AuctionURL, int(qrSlot.W))
	if err != nil {
		return nil, err
	}

	withLogo, err := r.stampImage(pdf, logo, logoSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp logo: %w", err)
	}
	out, err := r.stampImage(withLogo, qr, qrSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp QR code: %w", err)
	}
	return out, nil
}

func (r *Renderer) stampImage(pdf, img []byte, slot Rect) ([]byte, error) {
	w, h, err := pngSize(img)
	if err != nil {
		return nil, err
	}
	scale := slot.W / float64(w)
	if s := slot.H / float64(h); s < scale {
		scale = s
	}
	// pdfcpu caps absolute scale factors at 1; images smaller than their
	// slot stamp at natural size.
	if scale > 1 {
		scale = 1
	}

	desc := fmt.Sprintf("pos:bl, off:%.2f %.2f, scale:%.4f abs, rot:0",
		slot.X, FromTop(slot.Y+slot.H, r.pageH), scale)
	wm, err := api.ImageWatermarkForReader(bytes.NewReader(img), desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to create image stamp: %w", err)
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &out, nil, wm, nil); err != nil {
		return nil, fmt.Errorf("failed to apply image stamp: %w", err)
	}
	return out.Bytes(), nil
}
