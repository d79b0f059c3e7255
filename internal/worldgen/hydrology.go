package worldgen

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/voxelworks/terragen/internal/noise"
)

const (
	lakeNoiseScale     = 0.01
	lakeNoiseThreshold = 0.7
	riverBandLow       = 0.47
	riverBandHigh      = 0.53
	// Rivers only carve where the terrain sits close enough to sea level;
	// this bounds how far above the sea a channel can appear.
	riverMaxAboveSea = 4
)

// stageHydrology grows ocean and lake bodies, fills them with water,
// decorates banks and beaches, carves rivers, and smooths the terrain
// left underwater.
func (g *generator) stageHydrology(ctx context.Context) {
	g.classifyWater()
	g.growWater()
	g.fillWaterBodies()
	g.decorateBeaches()
	g.carveRivers()
	g.smoothUnderwater()
}

// classifyWater seeds the water map from ocean-biome columns, then marks
// interior depressions and basins below sea level as lakes.
func (g *generator) classifyWater() {
	s := g.s
	for col, b := range g.biomes {
		g.water[col] = b == BiomeOcean
	}

	lake := noise.Field2D(s.Width, s.Length, noise.Params{
		Octaves: 2,
		Scale:   lakeNoiseScale,
		Seed:    g.seed + seedOffsetLake,
	})
	lake = smoothHeights(lake, s.Width, s.Length, 1, 0)

	marked := 0
	for z := 1; z < s.Length-1; z++ {
		for x := 1; x < s.Width-1; x++ {
			col := g.col(x, z)
			if g.water[col] {
				continue
			}
			h := g.surface[col]
			if h >= s.SeaLevel {
				continue
			}

			switch {
			case lake[col] > lakeNoiseThreshold && h < s.SeaLevel-1:
				g.water[col] = true
			case g.isDepression(x, z, h):
				g.water[col] = true
			case h < s.SeaLevel-2 && g.basinNeighbors(x, z, h) >= 5:
				g.water[col] = true
			default:
				continue
			}
			marked++
		}
	}
	log.Debug("water classification", "lake_columns", marked)
}

// isDepression reports whether no 8-neighbor sits lower than the column.
func (g *generator) isDepression(x, z, h int) bool {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if g.surface[g.col(x+dx, z+dz)] < h {
				return false
			}
		}
	}
	return true
}

// basinNeighbors counts 8-neighbors at least two levels higher.
func (g *generator) basinNeighbors(x, z, h int) int {
	count := 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if g.surface[g.col(x+dx, z+dz)] >= h+2 {
				count++
			}
		}
	}
	return count
}

// growWater runs three flood iterations: a column joins the water body
// when a 4-neighbor is already water and its surface is at or below sea
// level. This rounds off jagged lake boundaries.
func (g *generator) growWater() {
	s := g.s
	for iter := 0; iter < 3; iter++ {
		next := make([]bool, len(g.water))
		copy(next, g.water)
		for z := 0; z < s.Length; z++ {
			for x := 0; x < s.Width; x++ {
				col := g.col(x, z)
				if g.water[col] || g.surface[col] > s.SeaLevel {
					continue
				}
				if g.adjacentWater(x, z) {
					next[col] = true
				}
			}
		}
		g.water = next
	}
}

func (g *generator) adjacentWater(x, z int) bool {
	s := g.s
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, nz := x+d[0], z+d[1]
		if nx < 0 || nx >= s.Width || nz < 0 || nz >= s.Length {
			continue
		}
		if g.water[g.col(nx, nz)] {
			return true
		}
	}
	return false
}

// fillWaterBodies computes a smoothed bed per water column, replaces the
// bed block, clears everything between bed and the old surface, and fills
// with water up to sea level. No water voxel is placed above sea level.
func (g *generator) fillWaterBodies() {
	s := g.s
	for z := 0; z < s.Length; z++ {
		g.reportRows("Simulating water bodies", z, 60, 75)
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if !g.water[col] {
				continue
			}

			oldSurface := g.surface[col]
			bed := oldSurface - 2
			if avg := g.neighborSurfaceAverage(x, z); avg > bed {
				bed = avg
			}
			if bed < 1 {
				bed = 1
			}
			if bed >= s.SeaLevel {
				bed = s.SeaLevel - 1
			}

			wx, wz := g.world(x, z)

			depth := s.SeaLevel - bed
			bedBlock := BlockSand
			if depth > 3 {
				bedBlock = BlockGravel
				if g.rng.Next() >= 0.6 {
					bedBlock = BlockClay
				}
			}
			g.place(wx, bed, wz, bedBlock)

			for y := bed + 1; y <= oldSurface; y++ {
				g.vox.Delete(wx, y, wz)
			}
			for y := bed + 1; y <= s.SeaLevel; y++ {
				g.place(wx, y, wz, BlockWaterStill)
			}

			g.surface[col] = bed
			g.waterBed[col] = bed
		}
	}
}

// neighborSurfaceAverage averages the surface heights of the 3x3 window.
func (g *generator) neighborSurfaceAverage(x, z int) int {
	s := g.s
	sum, n := 0, 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			nx, nz := x+dx, z+dz
			if nx < 0 || nx >= s.Width || nz < 0 || nz >= s.Length {
				continue
			}
			sum += g.surface[g.col(nx, nz)]
			n++
		}
	}
	return sum / n
}

// decorateBeaches converts the surface of land columns bordering water
// into sand when they sit within the beach band around sea level.
func (g *generator) decorateBeaches() {
	s := g.s
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if g.water[col] {
				continue
			}
			h := g.surface[col]
			if h < s.SeaLevel-2 || h > s.SeaLevel+1 {
				continue
			}
			if !g.borderingWater(x, z) {
				continue
			}

			wx, wz := g.world(x, z)
			g.place(wx, h, wz, BlockSand)
			if g.rng.Chance(0.5) && h > 1 {
				g.place(wx, h-1, wz, BlockSandLight)
			}
		}
	}
}

func (g *generator) borderingWater(x, z int) bool {
	s := g.s
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			nx, nz := x+dx, z+dz
			if nx < 0 || nx >= s.Width || nz < 0 || nz >= s.Length {
				continue
			}
			if g.water[g.col(nx, nz)] {
				return true
			}
		}
	}
	return false
}

// carveRivers cuts channels where the river noise lands inside its narrow
// band and the terrain is close to sea level, placing water only at or
// below sea level and coating the banks with sand and dirt.
func (g *generator) carveRivers() {
	s := g.s
	river := noise.Field2D(s.Width, s.Length, noise.Params{
		Octaves: 1,
		Scale:   s.RiverFreq,
		Seed:    g.seed + seedOffsetRiver,
	})

	carved := 0
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if g.water[col] {
				continue
			}
			v := river[col]
			if v < riverBandLow || v > riverBandHigh {
				continue
			}
			h := g.surface[col]
			if h > s.SeaLevel+riverMaxAboveSea {
				continue
			}

			// Deeper cut through the band's center.
			depth := 1
			if v > 0.485 && v < 0.515 {
				depth = 2
			}
			newSurface := h - depth
			if newSurface < 1 {
				newSurface = 1
			}

			wx, wz := g.world(x, z)
			for y := newSurface + 1; y <= h; y++ {
				g.vox.Delete(wx, y, wz)
				if y <= s.SeaLevel {
					g.place(wx, y, wz, BlockWaterStill)
				}
			}
			g.surface[col] = newSurface
			g.river[col] = true
			carved++

			g.coatRiverBanks(x, z, newSurface)
		}
	}
	log.Debug("river carving", "channel_columns", carved)
}

// coatRiverBanks converts adjacent bank surfaces within two levels of the
// channel into sand (60%) or dirt (40%).
func (g *generator) coatRiverBanks(x, z, channelSurface int) {
	s := g.s
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			nx, nz := x+dx, z+dz
			if nx < 0 || nx >= s.Width || nz < 0 || nz >= s.Length {
				continue
			}
			ncol := g.col(nx, nz)
			if g.water[ncol] || g.river[ncol] {
				continue
			}
			nh := g.surface[ncol]
			if nh > channelSurface+2 {
				continue
			}
			bank := BlockSand
			if g.rng.Next() >= 0.6 {
				bank = BlockDirt
			}
			wx, wz := g.world(nx, nz)
			g.place(wx, nh, wz, bank)
		}
	}
}

// smoothUnderwater deletes isolated solid voxels jutting into water near
// the beds: a solid goes when too few solids surround it while at least
// four of its six neighbors are water. The solid threshold scales with
// depth so deeper outcrops erode more aggressively.
func (g *generator) smoothUnderwater() {
	s := g.s
	waterID, haveWater := g.blocks.id(BlockWaterStill)
	if !haveWater {
		return
	}

	removed := 0
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if !g.water[col] {
				continue
			}
			bed := g.waterBed[col]

			for dz := -1; dz <= 1; dz++ {
				for dx := -1; dx <= 1; dx++ {
					nx, nz := x+dx, z+dz
					if nx < 0 || nx >= s.Width || nz < 0 || nz >= s.Length {
						continue
					}
					if g.water[g.col(nx, nz)] {
						continue
					}
					wx, wz := g.world(nx, nz)
					for y := bed; y <= s.SeaLevel; y++ {
						id, ok := g.vox.At(wx, y, wz)
						if !ok || id == waterID {
							continue
						}
						solids, waters := g.countNeighbors(wx, y, wz, waterID)
						heightFactor := float64(s.SeaLevel-y) / float64(s.SeaLevel)
						threshold := 2 + 3*heightFactor
						if float64(solids) < threshold && waters >= 4 {
							g.vox.Delete(wx, y, wz)
							removed++
						}
					}
				}
			}
		}
	}
	log.Debug("underwater smoothing", "removed", removed)
}

// countNeighbors counts solid and water blocks among the six face
// neighbors of a voxel.
func (g *generator) countNeighbors(x, y, z int, waterID BlockID) (solids, waters int) {
	dirs := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, d := range dirs {
		id, ok := g.vox.At(x+d[0], y+d[1], z+d[2])
		if !ok {
			continue
		}
		if id == waterID {
			waters++
		} else {
			solids++
		}
	}
	return solids, waters
}
