package grid

// GetGridCoords converts a row-major cell index into (x, y) coordinates for
// a grid with the given number of columns.
func GetGridCoords(index int, cols int) (x, y int) {
	x = index % cols
	y = index / cols
	return x, y
}

// Index is the inverse of GetGridCoords.
func Index(x, y, cols int) int {
	return y*cols + x
}
