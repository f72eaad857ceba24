package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signintech/gopdf"

	"github.com/mazadly/boardgen/board"
)

// fontFiles maps schema font families to the TTF files expected in the
// fonts directory. The board artwork pairs a Kufi display face for the
// headline with a Naskh text face for everything else.
var fontFiles = map[string]string{
	board.FontHeadline: "NotoKufiArabic-Bold.ttf",
	board.FontBody:     "NotoNaskhArabic-Regular.ttf",
}

// CheckFonts verifies all font files the schema can reference exist in dir.
func CheckFonts(dir string) error {
	for family, file := range fontFiles {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("font file for family %q not found: %w", family, err)
		}
	}
	return nil
}

// registerFonts embeds every known font family into the document under its
// family name, so slots can select fonts via pdf.SetFont(family, ...).
func registerFonts(pdf *gopdf.GoPdf, dir string) error {
	for family, file := range fontFiles {
		path := filepath.Join(dir, file)
		if err := pdf.AddTTFFont(family, path); err != nil {
			return fmt.Errorf("failed to add TTF font %s as %s: %w", path, family, err)
		}
	}
	return nil
}
