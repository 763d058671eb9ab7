package geo

// LineIterator implements the 2D Bresenham line algorithm over grid cells.
// Steps through cells along a line from start to end, both inclusive.
type LineIterator struct {
	currentX, currentY int
	targetX, targetY   int
	deltaX, deltaY     int
	stepX, stepY       int
	err                int
	started            bool
}

// NewLineIterator creates a 2D Bresenham line iterator.
func NewLineIterator(sx, sy, ex, ey int) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentY: sy,
		targetX: ex, targetY: ey,
		deltaX: abs(ex - sx),
		deltaY: -abs(ey - sy),
		stepX:  1,
		stepY:  1,
	}
	if sx > ex {
		it.stepX = -1
	}
	if sy > ey {
		it.stepY = -1
	}
	it.err = it.deltaX + it.deltaY
	return it
}

// Next advances the iterator to the next cell.
// Returns false when the target is reached.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true // Return start point
	}

	if it.currentX == it.targetX && it.currentY == it.targetY {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaY {
		it.err += it.deltaY
		it.currentX += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.currentY += it.stepY
	}
	return true
}

// X returns current X position.
func (it *LineIterator) X() int { return it.currentX }

// Y returns current Y position.
func (it *LineIterator) Y() int { return it.currentY }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
