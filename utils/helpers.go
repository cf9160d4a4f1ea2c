package utils

import (
	"math/rand"
)

type Point struct {
	X, Y int
}

// ToIndex maps the point onto a row-major grid of the given width.
func (p Point) ToIndex(width int) int {
	return ToIndex(p.X, p.Y, width)
}

func (p Point) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func ToIndex(x, y, width int) int {
	return x + y*width
}

func Midpoint(p1, p2 int) int {
	return (p2 + p1) / 2
}

func Average(nums ...float64) float64 {
	var total = 0.0
	var count = 0.0
	for _, num := range nums {
		total += num
		count++
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// Jitter shifts value by a uniform amount in [-scale, scale).
func Jitter(rng *rand.Rand, value, scale float64) float64 {
	random := rng.Float64() * scale * 2
	shift := scale - random
	return shift + value
}
