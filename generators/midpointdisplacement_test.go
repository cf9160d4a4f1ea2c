package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMidpointDisplacementLattice(t *testing.T) {
	cases := map[int]int{0: 3, 1: 3, 3: 3, 5: 5, 6: 9, 17: 17, 505: 513}
	for size, width := range cases {
		s := DefaultMidpointSettings()
		s.Size = size
		assert.Equal(t, width, NewMidPointDisplacement(s).width, "size %d", size)
	}
}

func TestMidpointDisplacementFillsGrid(t *testing.T) {
	s := DefaultMidpointSettings()
	s.Size = 37
	s.Seed = 9
	s.MaxHeightDifference = 2
	m := NewMidPointDisplacement(s)
	g := m.Generate()

	assert.Len(t, g.Heights, 37*37)
	min, max := g.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 2.0, max)
	for _, set := range m.set {
		assert.True(t, set)
	}
}

func TestMidpointDisplacementSeeded(t *testing.T) {
	s := DefaultMidpointSettings()
	s.Size = 17
	s.Seed = 4
	a := NewMidPointDisplacement(s).Generate()
	b := NewMidPointDisplacement(s).Generate()
	assert.Equal(t, a.Heights, b.Heights)
}

func TestGeneratorsShareInterface(t *testing.T) {
	hs := DefaultHeightmapSettings()
	hs.Size = 9
	ms := DefaultMidpointSettings()
	ms.Size = 9
	for _, g := range []Generator{NewNoiseGenerator(hs), NewMidPointDisplacement(ms)} {
		assert.Len(t, g.Generate().Heights, 81)
	}
}
