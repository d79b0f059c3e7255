package worldgen

import "context"

// stageColumns walks every (x,z) column, locates the surface from the
// density field, and lays the block layering bottom-to-top: a lava floor
// marker at y=0, stone up to three below the surface, then the
// biome-dependent subsurface and top layers.
func (g *generator) stageColumns(ctx context.Context) {
	s := g.s
	for z := 0; z < s.Length; z++ {
		g.reportRows("Building terrain columns", z, 40, 60)
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			surface := surfaceY(g.density, s.Width, s.Length, s.MaxHeight, x, z)
			g.surface[col] = surface

			wx, wz := g.world(x, z)
			g.place(wx, 0, wz, BlockLava)

			biome := g.biomes[col]
			underwater := surface < s.SeaLevel
			rock := g.rock[col]

			for y := 1; y <= surface; y++ {
				var name string
				switch {
				case y < surface-3:
					name = BlockStone
				case y < surface:
					name = g.layerMaterial(biome, rock, underwater, false)
				default:
					name = g.layerMaterial(biome, rock, underwater, true)
				}
				g.place(wx, y, wz, name)
			}
		}
	}
}

// layerMaterial picks the subsurface or top block for a column. Underwater
// columns take the biome's underwater material; grass biomes switch to
// cobblestone where the rock noise exceeds the gate.
func (g *generator) layerMaterial(b Biome, rock float64, underwater, top bool) string {
	m := materialsByBiome[b]
	if underwater {
		return m.underwater
	}
	if m.surface == BlockGrass && rock > rockThreshold {
		return BlockCobblestone
	}
	if top {
		return m.surface
	}
	return m.subsurface
}
