package render

import (
	"strings"

	"github.com/abdullahdiaa/garabic"
	"golang.org/x/text/unicode/bidi"
)

// Directional formatting characters used when handing raw field values to a
// PDF viewer that does its own layout (AcroForm strategy). RLM anchors the
// value to a right-to-left base direction so mixed Arabic/digit values are
// not reordered by the viewer.
const (
	rlm = "‏"
)

// ShapeVisual converts logical-order Arabic text into the visual-order,
// contextually shaped form a left-to-right text writer can draw verbatim.
// Shaping picks the presentation form of each letter (initial, medial,
// final, isolated); the bidi pass reorders mixed-direction runs and reverses
// right-to-left runs into visual order.
func ShapeVisual(text string) string {
	if text == "" {
		return ""
	}
	return reorderVisual(garabic.Shape(text))
}

// WrapRTL wraps a raw field value in right-to-left marks for the AcroForm
// strategy, where the viewer shapes the text itself and only the base
// direction needs pinning. Each line of a multiline value is wrapped on its
// own; the marks do not carry across line breaks.
func WrapRTL(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = rlm + line + rlm
		}
	}
	return strings.Join(lines, "\n")
}

// reorderVisual runs the Unicode bidi algorithm with a right-to-left base
// direction and emits the runs in visual order, reversing the characters of
// right-to-left runs. Digits and Latin substrings keep their own order.
func reorderVisual(text string) string {
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return text
	}
	ordering, err := p.Order()
	if err != nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(reverseRunes(run.String()))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
