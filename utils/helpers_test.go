package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIndexRowMajor(t *testing.T) {
	assert.Equal(t, 0, ToIndex(0, 0, 4))
	assert.Equal(t, 3, ToIndex(3, 0, 4))
	assert.Equal(t, 4, ToIndex(0, 1, 4))
	assert.Equal(t, 15, Point{X: 3, Y: 3}.ToIndex(4))
}

func TestPointInBounds(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{3, 3}, true},
		{Point{4, 0}, false},
		{Point{0, 4}, false},
		{Point{-1, 2}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.InBounds(4), "%v", tc.p)
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 2.0, Average(1, 2, 3))
	assert.Equal(t, 0.0, Average())
	assert.Equal(t, 5, Midpoint(2, 8))
}

func TestJitterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := Jitter(rng, 10, 0.5)
		assert.GreaterOrEqual(t, v, 9.5)
		assert.LessOrEqual(t, v, 10.5)
	}
}
