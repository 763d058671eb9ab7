package geo

// Occupancy is the read side of an occupancy grid.
type Occupancy interface {
	IsCellOccupied(x, y int) bool
}

// HasLineOfSight checks line of sight between two grid cells.
// Walks the Bresenham line and reports false on the first occupied cell
// strictly between the endpoints. The endpoint cells never block.
func HasLineOfSight(grid Occupancy, x1, y1, x2, y2 int) bool {
	if x1 == x2 && y1 == y2 {
		return true
	}

	it := NewLineIterator(x1, y1, x2, y2)
	it.Next() // Skip start point

	for it.Next() {
		x, y := it.X(), it.Y()
		if x == x2 && y == y2 {
			return true
		}
		if grid.IsCellOccupied(x, y) {
			return false
		}
	}
	return true
}

// FirstBlocked returns the first occupied cell strictly between the endpoints.
// ok is false when the line is clear.
func FirstBlocked(grid Occupancy, x1, y1, x2, y2 int) (x, y int, ok bool) {
	it := NewLineIterator(x1, y1, x2, y2)
	it.Next()

	for it.Next() {
		cx, cy := it.X(), it.Y()
		if cx == x2 && cy == y2 {
			break
		}
		if grid.IsCellOccupied(cx, cy) {
			return cx, cy, true
		}
	}
	return 0, 0, false
}
