package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeVisualEmpty(t *testing.T) {
	require.Equal(t, "", ShapeVisual(""))
}

func TestShapeVisualShapesArabic(t *testing.T) {
	// No lam-alef in the input, so shaping is 1:1 and only the glyph forms
	// and order change.
	input := "مرحبا"
	out := ShapeVisual(input)
	require.NotEqual(t, input, out)
	require.Len(t, []rune(out), len([]rune(input)))
}

func TestShapeVisualKeepsDigitOrder(t *testing.T) {
	out := ShapeVisual("مزاد 2026")
	require.Contains(t, out, "2026", "digit run must not be reversed")
}

func TestReorderVisualLeavesLTRAlone(t *testing.T) {
	require.Equal(t, "abc 123", reorderVisual("abc 123"))
}

func TestReorderVisualReversesRTLRun(t *testing.T) {
	input := "سلام"
	require.Equal(t, reverseRunes(input), reorderVisual(input))
}

func TestWrapRTL(t *testing.T) {
	out := WrapRTL("قاعة 12")
	require.True(t, strings.HasPrefix(out, rlm))
	require.True(t, strings.HasSuffix(out, rlm))
	require.Equal(t, "", WrapRTL(""))
}

func TestWrapRTLWrapsEachLine(t *testing.T) {
	out := WrapRTL("مزاد الرياض\nالعقاري الكبير")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, rlm), "every line pins its own base direction")
		require.True(t, strings.HasSuffix(line, rlm))
	}
}

func TestReverseRunes(t *testing.T) {
	require.Equal(t, "cba", reverseRunes("abc"))
	require.Equal(t, "دازم", reverseRunes("مزاد"))
	require.Equal(t, "", reverseRunes(""))
}
