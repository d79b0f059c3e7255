package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBasinWorld fills the generator with solid columns at the given
// surface heights: stone below, grass on top.
func buildBasinWorld(g *generator, heights []int) {
	table := g.blocks.table
	for z := 0; z < g.s.Length; z++ {
		for x := 0; x < g.s.Width; x++ {
			col := g.col(x, z)
			h := heights[col]
			g.surface[col] = h
			wx, wz := g.world(x, z)
			g.vox.Set(wx, 0, wz, table[BlockLava])
			for y := 1; y < h; y++ {
				g.vox.Set(wx, y, wz, table[BlockStone])
			}
			g.vox.Set(wx, h, wz, table[BlockGrass])
		}
	}
}

func TestClassifyWaterDepression(t *testing.T) {
	s := testSettings()
	s.Width = 8
	s.Length = 8
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)
	for i := range g.biomes {
		g.biomes[i] = BiomePlains
	}

	// A single-column pit well below sea level surrounded by higher land.
	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel + 2
	}
	heights[g.col(4, 4)] = s.SeaLevel - 5
	buildBasinWorld(g, heights)

	g.classifyWater()
	assert.True(t, g.water[g.col(4, 4)], "strict depression below sea level must become water")
	assert.False(t, g.water[g.col(1, 1)], "high ground must stay dry")
}

func TestClassifyWaterSeedsOcean(t *testing.T) {
	s := testSettings()
	s.Width = 8
	s.Length = 8
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)
	for i := range g.biomes {
		g.biomes[i] = BiomePlains
	}
	g.biomes[g.col(2, 2)] = BiomeOcean

	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel + 2
	}
	buildBasinWorld(g, heights)

	g.classifyWater()
	assert.True(t, g.water[g.col(2, 2)])
}

func TestFillWaterBodies(t *testing.T) {
	s := testSettings()
	s.Width = 8
	s.Length = 8
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)
	for i := range g.biomes {
		g.biomes[i] = BiomePlains
	}

	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel - 4
	}
	buildBasinWorld(g, heights)
	for i := range g.water {
		g.water[i] = true
	}

	g.fillWaterBodies()

	table := g.blocks.table
	waterID := table[BlockWaterStill]
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			bed := g.waterBed[col]
			require.Greater(t, bed, 0)
			require.Less(t, bed, s.SeaLevel)

			wx, wz := g.world(x, z)
			bedID, ok := g.vox.At(wx, bed, wz)
			require.True(t, ok, "bed missing at (%d,%d)", x, z)
			assert.Contains(t, []BlockID{table[BlockSand], table[BlockGravel], table[BlockClay]}, bedID)

			for y := bed + 1; y <= s.SeaLevel; y++ {
				id, ok := g.vox.At(wx, y, wz)
				require.True(t, ok, "water column gap at (%d,%d,%d)", x, y, z)
				require.Equal(t, waterID, id)
			}
			// Nothing above the water surface.
			for y := s.SeaLevel + 1; y < s.MaxHeight; y++ {
				require.False(t, g.vox.Has(wx, y, wz), "block above sea level at (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestGrowWaterRespectsSeaLevel(t *testing.T) {
	s := testSettings()
	s.Width = 8
	s.Length = 8
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)

	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel + 5
	}
	// A wet column next to one at sea level and one well above it.
	heights[g.col(3, 3)] = s.SeaLevel - 3
	heights[g.col(4, 3)] = s.SeaLevel
	buildBasinWorld(g, heights)
	g.water[g.col(3, 3)] = true

	g.growWater()
	assert.True(t, g.water[g.col(4, 3)], "column at sea level adjacent to water should flood")
	assert.False(t, g.water[g.col(5, 3)], "column above sea level must not flood")
}

func TestDecorateBeaches(t *testing.T) {
	s := testSettings()
	s.Width = 8
	s.Length = 8
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)

	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel
	}
	buildBasinWorld(g, heights)
	g.water[g.col(3, 3)] = true
	g.waterBed[g.col(3, 3)] = s.SeaLevel - 4

	g.decorateBeaches()

	table := g.blocks.table
	wx, wz := g.world(4, 3)
	id, ok := g.vox.At(wx, s.SeaLevel, wz)
	require.True(t, ok)
	assert.Equal(t, table[BlockSand], id, "shore surface should turn to sand")
}

func TestCarveRiversStaysAtOrBelowSeaLevel(t *testing.T) {
	s := testSettings()
	g := newTestGenerator(s, 42)
	g.biomes = make([]Biome, s.Width*s.Length)

	heights := make([]int, s.Width*s.Length)
	for i := range heights {
		heights[i] = s.SeaLevel + 2
	}
	buildBasinWorld(g, heights)

	g.carveRivers()

	table := g.blocks.table
	waterID := table[BlockWaterStill]
	g.vox.Range(func(x, y, z int, id BlockID) bool {
		if id == waterID {
			require.LessOrEqual(t, y, s.SeaLevel, "river water above sea level at (%d,%d,%d)", x, y, z)
		}
		return true
	})
}
