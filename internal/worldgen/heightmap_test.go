package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.Width = 24
	s.Length = 24
	s.MaxHeight = 64
	return s
}

func TestBuildHeightmapBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "high roughness", mutate: func(s *Settings) { s.Roughness = 2 }},
		{name: "low roughness", mutate: func(s *Settings) { s.Roughness = 0.2 }},
		{name: "half flat", mutate: func(s *Settings) { s.FlatnessFactor = 0.5 }},
		{name: "no smoothing", mutate: func(s *Settings) { s.Smoothing = 0 }},
		{name: "max blend", mutate: func(s *Settings) { s.TerrainBlend = 1; s.Smoothing = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings()
			tt.mutate(&s)
			height, rock := buildHeightmap(s, 42)
			require.Len(t, height, s.Width*s.Length)
			require.Len(t, rock, s.Width*s.Length)
			for i := range height {
				require.GreaterOrEqual(t, height[i], 0.0, "height at %d", i)
				require.LessOrEqual(t, height[i], 1.0, "height at %d", i)
				require.GreaterOrEqual(t, rock[i], 0.0, "rock at %d", i)
				require.LessOrEqual(t, rock[i], 1.0, "rock at %d", i)
			}
		})
	}
}

func TestBuildHeightmapDeterministic(t *testing.T) {
	s := testSettings()
	h1, r1 := buildHeightmap(s, 1234)
	h2, r2 := buildHeightmap(s, 1234)
	assert.Equal(t, h1, h2)
	assert.Equal(t, r1, r2)

	h3, _ := buildHeightmap(s, 1235)
	assert.NotEqual(t, h1, h3, "adjacent seeds should still differ")
}

func TestBuildHeightmapCompletelyFlat(t *testing.T) {
	s := testSettings()
	s.CompletelyFlat = true
	height, _ := buildHeightmap(s, 42)
	for i, h := range height {
		require.Equal(t, flatHeight, h, "cell %d", i)
	}
}

func TestErodeHeightsLimitsDrops(t *testing.T) {
	s := testSettings()
	height, _ := buildHeightmap(s, 42)

	// After erosion, no cell may sit more than one block level above its
	// lowest 3x3 neighbor.
	levels := make([]int, len(height))
	for i, h := range height {
		levels[i] = int(erosionBase + h*erosionRange*s.Roughness)
	}
	for z := 1; z < s.Length-1; z++ {
		for x := 1; x < s.Width-1; x++ {
			lowest := levels[z*s.Width+x]
			for dz := -1; dz <= 1; dz++ {
				for dx := -1; dx <= 1; dx++ {
					if lv := levels[(z+dz)*s.Width+x+dx]; lv < lowest {
						lowest = lv
					}
				}
			}
			assert.LessOrEqual(t, levels[z*s.Width+x], lowest+1, "cell (%d,%d)", x, z)
		}
	}
}

func TestDensityAmplitudeBands(t *testing.T) {
	assert.InDelta(t, 4.0, densityAmplitude(0), 1e-9)
	assert.InDelta(t, 5.2, densityAmplitude(0.3), 1e-9)
	assert.InDelta(t, 6.0, densityAmplitude(0.5), 1e-9)
	assert.InDelta(t, 6.0, densityAmplitude(1.0), 1e-9)
	assert.InDelta(t, 6.0, densityAmplitude(1.5), 1e-9)
	assert.InDelta(t, 7.0, densityAmplitude(2.0), 1e-9)
}

func TestBuildDensityFlatSurface(t *testing.T) {
	s := testSettings()
	s.CompletelyFlat = true
	height, _ := buildHeightmap(s, 42)
	_, biomes := buildClimate(s, 42, height)
	density := buildDensity(s, 42, height, biomes)

	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			got := surfaceY(density, s.Width, s.Length, s.MaxHeight, x, z)
			require.Equal(t, 24, got, "column (%d,%d)", x, z)
		}
	}
}

func TestBuildDensitySolidFloor(t *testing.T) {
	s := testSettings()
	height, _ := buildHeightmap(s, 7)
	_, biomes := buildClimate(s, 7, height)
	density := buildDensity(s, 7, height, biomes)

	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			for y := 0; y <= 1; y++ {
				require.GreaterOrEqual(t, density[(y*s.Length+z)*s.Width+x], 0.0,
					"floor must be solid at (%d,%d,%d)", x, y, z)
			}
		}
	}
}
