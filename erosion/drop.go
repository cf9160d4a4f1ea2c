package erosion

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Drop is a single water particle. It lives for one erosion cycle.
type Drop struct {
	Position  mgl64.Vec2
	Direction mgl64.Vec2
	Velocity  float64
	Water     float64
}

type Termination uint8

const (
	// PathExhausted means the drop ran for MaxPath steps.
	PathExhausted Termination = iota
	OutOfBounds
	// Stalled means the new direction had zero length.
	Stalled
)

func (t Termination) String() string {
	switch t {
	case OutOfBounds:
		return "out-of-bounds"
	case Stalled:
		return "stalled"
	}
	return "path-exhausted"
}

// DropResult describes how a drop ended. Discarded is the sediment still
// carried at that moment; it is lost from the terrain.
type DropResult struct {
	Steps       int
	Termination Termination
	Eroded      float64
	Deposited   float64
	Discarded   float64
}

// SpawnDrop places a drop uniformly in [0, size-1]² heading along a wind
// sample.
func (s *Simulator) SpawnDrop(size int) Drop {
	var limit = float64(size - 1)
	x := s.rng.Float64() * limit
	y := s.rng.Float64() * limit
	return Drop{
		Position:  mgl64.Vec2{x, y},
		Direction: s.wind.Sample(s.settings),
		Velocity:  1,
		Water:     1,
	}
}

// NewDrop builds a drop from explicit parameters. A position outside the
// grid or a direction component outside [-1, 1] is reported and replaced by
// a random drop; the run carries on.
func (s *Simulator) NewDrop(size int, position, direction mgl64.Vec2, velocity, water float64) Drop {
	if !WithinBounds(position, size) {
		s.log.Error("invalid drop position, generating drop parameters",
			"x", position.X(), "y", position.Y(), "size", size)
		return s.SpawnDrop(size)
	}
	if direction.X() < -1 || direction.X() > 1 || direction.Y() < -1 || direction.Y() > 1 {
		s.log.Error("invalid drop direction, generating drop parameters",
			"x", direction.X(), "y", direction.Y())
		return s.SpawnDrop(size)
	}
	return Drop{Position: position, Direction: direction, Velocity: velocity, Water: water}
}
