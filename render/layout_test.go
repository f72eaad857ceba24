package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazadly/boardgen/board"
)

func TestFromTop(t *testing.T) {
	require.InDelta(t, 5569.29, FromTop(100, BoardHeightPt), 0.001)
	require.InDelta(t, 0, FromTop(BoardHeightPt, BoardHeightPt), 0.001)
}

func TestSizeMatchesBoard(t *testing.T) {
	require.True(t, SizeMatchesBoard(BoardWidthPt, BoardHeightPt))
	require.True(t, SizeMatchesBoard(11340, 5670), "print-shop tolerance")
	require.False(t, SizeMatchesBoard(595.28, 841.89), "A4 is not a board")
}

func TestEverySchemaFieldHasSlot(t *testing.T) {
	for _, spec := range board.Schema {
		slot, ok := SlotFor(spec.Key)
		require.True(t, ok, "field %s has no slot", spec.Key)

		// Slots must lie on the board.
		require.GreaterOrEqual(t, slot.Box.X, 0.0, spec.Key)
		require.GreaterOrEqual(t, slot.Box.Y, 0.0, spec.Key)
		require.LessOrEqual(t, slot.Box.X+slot.Box.W, BoardWidthPt, spec.Key)
		require.LessOrEqual(t, slot.Box.Y+slot.Box.H, BoardHeightPt, spec.Key)
		require.Greater(t, slot.FontSize, 0.0, spec.Key)

		if spec.Lines == 2 {
			require.Greater(t, slot.LineGap, 0.0, "split field %s needs a line gap", spec.Key)
		}
	}
}

func TestImageSlotsOnBoard(t *testing.T) {
	for _, slot := range []Rect{logoSlot, qrSlot} {
		require.LessOrEqual(t, slot.X+slot.W, BoardWidthPt)
		require.LessOrEqual(t, slot.Y+slot.H, BoardHeightPt)
	}
}

func TestSlotsDoNotOverlap(t *testing.T) {
	boxes := map[string]Rect{"logo": logoSlot, "qr": qrSlot}
	for key, slot := range textSlots {
		boxes[key] = slot.Box
	}

	overlaps := func(a, b Rect) bool {
		return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
	}

	for keyA, a := range boxes {
		for keyB, b := range boxes {
			if keyA < keyB {
				require.False(t, overlaps(a, b), "slots %s and %s overlap", keyA, keyB)
			}
		}
	}
}

func TestSlotForUnknownKey(t *testing.T) {
	_, ok := SlotFor("nope")
	require.False(t, ok)
}
