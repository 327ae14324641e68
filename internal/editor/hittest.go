package editor

import "vitae/internal/element"

// HitTest returns the topmost element containing p. painted must be in paint
// order; the scan runs from the end. Unless rotated is set, rotation is
// ignored and the axis-aligned box is used.
func HitTest(painted []element.Element, p element.Point, rotated bool) (element.Element, bool) {
	for i := len(painted) - 1; i >= 0; i-- {
		e := painted[i]
		if rotated {
			if e.ContainsRotated(p) {
				return e, true
			}
			continue
		}
		if e.Bounds().Contains(p) {
			return e, true
		}
	}
	return element.Element{}, false
}
