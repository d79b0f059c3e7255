package worldgen

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/voxelworks/terragen/internal/noise"
)

const (
	smallCaveScale = 0.03
	largeCaveScale = 0.06
	oreNoiseScale  = 0.04
)

// oreBand assigns an ore type inside a depth range. Bands are evaluated
// top of the list first; the first match wins, so a voxel is never
// replaced twice in one pass.
type oreBand struct {
	name       string
	maxY       int
	offset     float64
	randomGate float64 // extra probability gate, 0 means none
}

var oreBands = []oreBand{
	{name: BlockCoal, maxY: 40, offset: 0.12},
	{name: BlockIron, maxY: 35, offset: 0.07},
	{name: BlockGold, maxY: 20, offset: 0.04},
	{name: BlockEmerald, maxY: 30, offset: 0.02, randomGate: 0.3},
	{name: BlockDiamond, maxY: 15, offset: 0},
}

// stageCavesAndOres walks two 3D cave noise fields to delete stone and an
// ore field to replace remaining stone with depth-banded ores. Only
// voxels currently typed stone, at least two below the surface, are
// candidates; a voxel carved this pass is never also ore-replaced.
func (g *generator) stageCavesAndOres(ctx context.Context) {
	s := g.s
	stoneID, haveStone := g.blocks.id(BlockStone)
	if !haveStone {
		return
	}

	small := noise.Field3D(s.Width, s.MaxHeight, s.Length, noise.Params{
		Octaves: 2,
		Scale:   smallCaveScale,
		Seed:    g.seed + seedOffsetSmallCave,
	})
	large := noise.Field3D(s.Width, s.MaxHeight, s.Length, noise.Params{
		Octaves: 2,
		Scale:   largeCaveScale,
		Seed:    g.seed + seedOffsetLargeCave,
	})
	ore := noise.Field3D(s.Width, s.MaxHeight, s.Length, noise.Params{
		Octaves: 1,
		Scale:   oreNoiseScale,
		Seed:    g.seed + seedOffsetOre,
	})

	carvedCount, oreCount := 0, 0
	for z := 0; z < s.Length; z++ {
		g.reportRows("Carving caves and ores", z, 75, 85)
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			surface := g.surface[col]
			wx, wz := g.world(x, z)

			for y := 2; y <= surface-2; y++ {
				id, ok := g.vox.At(wx, y, wz)
				if !ok || id != stoneID {
					continue
				}
				i := (y*s.Length+z)*s.Width + x

				sv, lv := small[i], large[i]
				if (sv > 0.6 && lv > 0.5) || sv > 0.7 || lv > 0.65 {
					g.vox.Delete(wx, y, wz)
					carvedCount++
					continue
				}

				if !s.GenerateOres {
					continue
				}
				for _, band := range oreBands {
					if y > band.maxY || ore[i] <= s.OreRarity+band.offset {
						continue
					}
					if band.randomGate > 0 && !g.rng.Chance(band.randomGate) {
						continue
					}
					g.place(wx, y, wz, band.name)
					oreCount++
					break
				}
			}
		}
	}
	log.Debug("cave and ore pass", "carved", carvedCount, "ores", oreCount)
}
