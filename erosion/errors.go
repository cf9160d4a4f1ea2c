package erosion

import "errors"

var (
	ErrUnknownPreset        = errors.New("erosion: unknown preset")
	ErrUnknownWindDirection = errors.New("erosion: unknown wind direction")
)
