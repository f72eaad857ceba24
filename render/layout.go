package render

import "github.com/mazadly/boardgen/board"

// The board template is authored at print size: 4 m wide, 2 m high.
// 1 m = 2834.6457 PostScript points.
const (
	BoardWidthPt  = 11338.58
	BoardHeightPt = 5669.29

	// Templates produced by the print shop occasionally differ by a point
	// or two from the nominal size after their own export pipeline.
	sizeTolerancePt = 4.0
)

// Align selects horizontal placement of a text slot within its box.
type Align int

const (
	AlignCenter Align = iota
	AlignRight
)

// Rect is a box on the board in template points, top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// TextSlot positions one field's text on the board.
type TextSlot struct {
	Box      Rect
	FontSize float64
	Align    Align

	// LineGap separates the two lines of split fields.
	LineGap float64
}

// textSlots maps field keys to their fixed positions. Coordinates come from
// the board artwork and are top-left origin; convert with FromTop when a
// bottom-left consumer needs them.
var textSlots = map[string]TextSlot{
	board.FieldTitle:      {Box: Rect{X: 1569, Y: 520, W: 8200, H: 1300}, FontSize: 430, Align: AlignCenter, LineGap: 120},
	board.FieldOrganizer:  {Box: Rect{X: 5870, Y: 2180, W: 4600, H: 360}, FontSize: 230, Align: AlignRight},
	board.FieldLicenseNo:  {Box: Rect{X: 5870, Y: 2680, W: 4600, H: 300}, FontSize: 180, Align: AlignRight},
	board.FieldWeekday:    {Box: Rect{X: 5870, Y: 3180, W: 2200, H: 300}, FontSize: 200, Align: AlignRight},
	board.FieldDateHijri:  {Box: Rect{X: 5870, Y: 3620, W: 4600, H: 300}, FontSize: 200, Align: AlignRight},
	board.FieldDateGreg:   {Box: Rect{X: 5870, Y: 4060, W: 4600, H: 280}, FontSize: 160, Align: AlignRight},
	board.FieldTime:       {Box: Rect{X: 900, Y: 3620, W: 2200, H: 300}, FontSize: 200, Align: AlignRight},
	board.FieldCity:       {Box: Rect{X: 900, Y: 2180, W: 4300, H: 360}, FontSize: 230, Align: AlignRight},
	board.FieldVenue:      {Box: Rect{X: 900, Y: 2680, W: 4300, H: 760}, FontSize: 190, Align: AlignRight, LineGap: 90},
	board.FieldPhone:      {Box: Rect{X: 1800, Y: 4650, W: 3400, H: 320}, FontSize: 210, Align: AlignRight},
	board.FieldAuctionURL: {Box: Rect{X: 1800, Y: 5150, W: 3800, H: 220}, FontSize: 120, Align: AlignRight},
}

// Image slots: organizer logo top-right of the artwork, QR code next to the
// contact block at the bottom-left.
var (
	logoSlot = Rect{X: 10050, Y: 280, W: 1000, H: 1000}
	qrSlot   = Rect{X: 450, Y: 4300, W: 1200, H: 1200}
)

// SlotFor returns the text slot of a field key.
func SlotFor(key string) (TextSlot, bool) {
	slot, ok := textSlots[key]
	return slot, ok
}

// FromTop converts a top-left-origin y coordinate into the bottom-left
// origin used by PDF content streams and pdfcpu stamp offsets.
func FromTop(y, pageHeight float64) float64 {
	return pageHeight - y
}

// SizeMatchesBoard reports whether a template page size is the 4m x 2m
// board, within the print-shop export tolerance.
func SizeMatchesBoard(w, h float64) bool {
	return abs(w-BoardWidthPt) <= sizeTolerancePt && abs(h-BoardHeightPt) <= sizeTolerancePt
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
