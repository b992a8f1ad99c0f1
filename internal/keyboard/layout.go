package keyboard

// DefaultWidth is the width of the demo window in pixels.
const DefaultWidth = 1000

// Layout maps key indices onto a horizontal axis of the given width. Units are whatever
// the presentation layer draws in: pixels for a window, columns for a terminal.
type Layout struct {
	Width int
}

// NewLayout returns a layout of the given width, falling back to DefaultWidth.
func NewLayout(width int) Layout {
	if width < KeyCount {
		width = DefaultWidth
	}
	return Layout{Width: width}
}

// KeyWidth is the width of one key.
func (l Layout) KeyWidth() int {
	return l.Width / KeyCount
}

// KeyIndex resolves a note name to its key index.
func (l Layout) KeyIndex(note string) (int, error) {
	return KeyIndex(note)
}

// KeyIndexToPosition returns the centre of key idx. Fractional indices are allowed so a
// finger in motion can be placed between keys.
func (l Layout) KeyIndexToPosition(idx float64) float64 {
	kw := l.KeyWidth()
	return idx*float64(kw) + float64(kw/2)
}

// PositionToKeyIndex is the inverse of KeyIndexToPosition, clamped to the keyboard.
func (l Layout) PositionToKeyIndex(pos float64) int {
	kw := l.KeyWidth()
	if kw == 0 {
		return 0
	}
	idx := int(pos) / kw
	if idx < 0 {
		return 0
	}
	if idx >= KeyCount {
		return KeyCount - 1
	}
	return idx
}
