package terrain

import "errors"

var (
	// ErrSizeMismatch is returned when a height slice does not hold size*size values.
	ErrSizeMismatch = errors.New("terrain: height count does not match grid size")

	// ErrCellSize is returned when a downsample cell size does not divide the grid.
	ErrCellSize = errors.New("terrain: invalid cell size")
)
