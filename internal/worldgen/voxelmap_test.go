package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
	}{
		{name: "origin", x: 0, y: 0, z: 0},
		{name: "positive", x: 100, y: 64, z: 7},
		{name: "negative x and z", x: -64, y: 0, z: -128},
		{name: "axis extremes", x: -(1 << 20), y: 0, z: (1 << 20) - 1},
		{name: "mixed", x: -1, y: 383, z: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := UnpackKey(PackKey(tt.x, tt.y, tt.z))
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
			assert.Equal(t, tt.z, z)
		})
	}
}

func TestPackKeyUnique(t *testing.T) {
	seen := make(map[uint64][3]int)
	for x := -8; x <= 8; x++ {
		for y := 0; y <= 8; y++ {
			for z := -8; z <= 8; z++ {
				key := PackKey(x, y, z)
				if prev, dup := seen[key]; dup {
					t.Fatalf("key collision between %v and (%d,%d,%d)", prev, x, y, z)
				}
				seen[key] = [3]int{x, y, z}
			}
		}
	}
}

func TestVoxelMap(t *testing.T) {
	m := NewVoxelMap()
	require.Equal(t, 0, m.Len())

	m.Set(-3, 0, 7, 5)
	m.Set(-3, 1, 7, 9)

	id, ok := m.At(-3, 0, 7)
	require.True(t, ok)
	assert.Equal(t, BlockID(5), id)
	assert.True(t, m.Has(-3, 1, 7))
	assert.False(t, m.Has(0, 0, 0))
	assert.Equal(t, 2, m.Len())

	// Overwrite keeps a single entry.
	m.Set(-3, 0, 7, 6)
	assert.Equal(t, 2, m.Len())

	m.Delete(-3, 0, 7)
	assert.False(t, m.Has(-3, 0, 7))
	assert.Equal(t, 1, m.Len())

	count := 0
	m.Range(func(x, y, z int, id BlockID) bool {
		assert.Equal(t, -3, x)
		assert.Equal(t, 1, y)
		assert.Equal(t, 7, z)
		assert.Equal(t, BlockID(9), id)
		count++
		return true
	})
	assert.Equal(t, 1, count)
}
