package worldgen

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
)

const (
	treeGridSpacing   = 5
	cactusGridSpacing = 7
	duneGridSpacing   = 9
)

// treeParams sets per-biome tree probability and trunk height range.
type treeParams struct {
	probability float64
	minHeight   int
	maxHeight   int
}

var treesByBiome = map[Biome]treeParams{
	BiomeForest:      {probability: 0.35, minHeight: 4, maxHeight: 6},
	BiomeTaiga:       {probability: 0.3, minHeight: 5, maxHeight: 7},
	BiomeJungle:      {probability: 0.4, minHeight: 5, maxHeight: 7},
	BiomeSnowyForest: {probability: 0.25, minHeight: 3, maxHeight: 5},
	BiomeSnowyTaiga:  {probability: 0.25, minHeight: 4, maxHeight: 5},
	BiomeSwamp:       {probability: 0.15, minHeight: 4, maxHeight: 5},
	BiomePlains:      {probability: 0.08, minHeight: 4, maxHeight: 5},
	BiomeSavanna:     {probability: 0.05, minHeight: 4, maxHeight: 5},
	BiomeSnowyPlains: {probability: 0.03, minHeight: 3, maxHeight: 4},
}

// stageVegetation scatters trees, cacti and dunes on a jittered grid: a
// single random offset per generation selects which grid cells are
// candidates, then per-cell draws decide placement. All draws come from
// the seeded stream, so vegetation is reproducible.
func (g *generator) stageVegetation(ctx context.Context) {
	s := g.s

	treeOffsetX := g.rng.Intn(treeGridSpacing)
	treeOffsetZ := g.rng.Intn(treeGridSpacing)
	cactusOffsetX := g.rng.Intn(cactusGridSpacing)
	cactusOffsetZ := g.rng.Intn(cactusGridSpacing)
	duneOffsetX := g.rng.Intn(duneGridSpacing)
	duneOffsetZ := g.rng.Intn(duneGridSpacing)

	trees, cacti, dunes := 0, 0, 0
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if g.water[col] || g.river[col] {
				continue
			}
			biome := g.biomes[col]
			surface := g.surface[col]
			if surface <= s.SeaLevel {
				continue
			}

			if x%cactusGridSpacing == cactusOffsetX && z%cactusGridSpacing == cactusOffsetZ {
				if g.placeCactus(x, z, biome, surface) {
					cacti++
					continue
				}
			}
			if x%duneGridSpacing == duneOffsetX && z%duneGridSpacing == duneOffsetZ {
				if g.placeDune(x, z, biome, surface) {
					dunes++
					continue
				}
			}
			if x%treeGridSpacing == treeOffsetX && z%treeGridSpacing == treeOffsetZ {
				if g.placeTree(x, z, biome, surface) {
					trees++
				}
			}
		}
	}
	log.Debug("vegetation pass", "trees", trees, "cacti", cacti, "dunes", dunes)
}

// inWorld reports whether a world coordinate falls inside the generated
// footprint. Canopies near the border would otherwise leak past it.
func (g *generator) inWorld(wx, wz int) bool {
	gx := wx + g.s.Width/2
	gz := wz + g.s.Length/2
	return gx >= 0 && gx < g.s.Width && gz >= 0 && gz < g.s.Length
}

// surfaceIs reports whether the column's top block carries the given name.
func (g *generator) surfaceIs(x, z, surface int, name string) bool {
	id, ok := g.blocks.id(name)
	if !ok {
		return false
	}
	wx, wz := g.world(x, z)
	got, present := g.vox.At(wx, surface, wz)
	return present && got == id
}

// placeCactus grows a 3-4 block cactus on desert sand. The probability
// scales with local temperature from a 0.2 base up to 0.35.
func (g *generator) placeCactus(x, z int, biome Biome, surface int) bool {
	if biome != BiomeDesert || !g.surfaceIs(x, z, surface, BlockSand) {
		return false
	}
	p := 0.2 + 0.15*g.temperature[g.col(x, z)]
	if p > 0.35 {
		p = 0.35
	}
	if !g.rng.Chance(p) {
		return false
	}

	height := 3 + g.rng.Intn(2)
	if surface+height >= g.s.MaxHeight {
		return false
	}
	wx, wz := g.world(x, z)
	for y := surface + 1; y <= surface+height; y++ {
		if g.vox.Has(wx, y, wz) {
			return false
		}
	}
	for y := surface + 1; y <= surface+height; y++ {
		g.place(wx, y, wz, BlockCactus)
	}
	return true
}

// placeDune mounds one or two blocks of sand on open desert.
func (g *generator) placeDune(x, z int, biome Biome, surface int) bool {
	if biome != BiomeDesert || !g.surfaceIs(x, z, surface, BlockSand) {
		return false
	}
	if !g.rng.Chance(0.4) {
		return false
	}
	wx, wz := g.world(x, z)
	if g.vox.Has(wx, surface+1, wz) || surface+2 >= g.s.MaxHeight {
		return false
	}
	g.place(wx, surface+1, wz, BlockSand)
	if g.rng.Chance(0.3) && !g.vox.Has(wx, surface+2, wz) {
		g.place(wx, surface+2, wz, BlockSand)
	}
	return true
}

// placeTree grows a biome-weighted tree: trunk of the biome's log type
// and a vertically compressed spherical leaf shell, plus a handful of
// straggler leaves. The trunk is collision-checked before anything is
// committed; leaves only fill empty cells.
func (g *generator) placeTree(x, z int, biome Biome, surface int) bool {
	params, ok := treesByBiome[biome]
	if !ok {
		return false
	}
	if g.surfaceIs(x, z, surface, BlockSand) {
		return false
	}
	if !g.rng.Chance(params.probability) {
		return false
	}

	height := params.minHeight + g.rng.Intn(params.maxHeight-params.minHeight+1)
	radius := 2
	if height >= 6 {
		radius = 3
	}
	if surface+height+radius >= g.s.MaxHeight {
		return false
	}

	wx, wz := g.world(x, z)
	for y := surface + 1; y <= surface+height; y++ {
		if g.vox.Has(wx, y, wz) {
			return false
		}
	}

	trunk := BlockLog
	leaves := BlockOakLeaves
	if biome.snowy() || biome == BiomeTaiga {
		trunk = BlockPoplarLog
		leaves = BlockColdLeaves
	}

	for y := surface + 1; y <= surface+height; y++ {
		g.place(wx, y, wz, trunk)
	}

	// Leaf shell around the crown, squashed vertically.
	top := surface + height
	for dy := -1; dy <= radius; dy++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dz == 0 && dy <= 0 {
					continue
				}
				dist := math.Sqrt(float64(dx*dx+dz*dz) + float64(dy*dy)/(0.5*0.5))
				if dist > float64(radius) {
					continue
				}
				lx, ly, lz := wx+dx, top+dy, wz+dz
				if g.inWorld(lx, lz) && !g.vox.Has(lx, ly, lz) {
					g.place(lx, ly, lz, leaves)
				}
			}
		}
	}

	// A few stragglers just outside the shell.
	for i := 0; i < 5; i++ {
		dx := g.rng.Intn(2*radius+3) - radius - 1
		dz := g.rng.Intn(2*radius+3) - radius - 1
		dy := g.rng.Intn(radius + 1)
		lx, ly, lz := wx+dx, top+dy, wz+dz
		if g.inWorld(lx, lz) && !g.vox.Has(lx, ly, lz) {
			g.place(lx, ly, lz, leaves)
		}
	}
	return true
}
