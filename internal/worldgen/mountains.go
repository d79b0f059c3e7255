package worldgen

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
)

// stageMountains applies a ridged height boost near the world borders.
// The boost falls off cosine-shaped with distance from the nearest edge
// and is amplified where two edges meet, producing corner peaks. Columns
// under water are left alone.
func (g *generator) stageMountains(ctx context.Context) {
	s := g.s
	m := s.Mountains
	if m == nil || !m.Enabled {
		return
	}

	sizeAdjustment := 1 - m.Size*4
	if sizeAdjustment < 0.05 {
		sizeAdjustment = 0.05
	}
	span := s.Width
	if s.Length < span {
		span = s.Length
	}
	mountainWidth := float64(span) * 0.25 * sizeAdjustment
	if mountainWidth < 5 {
		mountainWidth = 5
	}

	raised := 0
	for z := 0; z < s.Length; z++ {
		for x := 0; x < s.Width; x++ {
			col := g.col(x, z)
			if g.water[col] || g.river[col] {
				continue
			}

			dx := x
			if s.Width-1-x < dx {
				dx = s.Width - 1 - x
			}
			dz := z
			if s.Length-1-z < dz {
				dz = s.Length - 1 - z
			}
			dist := dx
			if dz < dist {
				dist = dz
			}
			if float64(dist) >= mountainWidth {
				continue
			}

			factor := math.Cos(float64(dist) / mountainWidth * math.Pi / 2)
			if float64(dx) < mountainWidth && float64(dz) < mountainWidth {
				corner := (1 - float64(dx)/mountainWidth) * (1 - float64(dz)/mountainWidth)
				factor *= 1 + 0.4*corner
			}

			// Unseeded sinusoidal jaggedness along the ridge line.
			ridge := math.Sin(float64(x)*0.3)*math.Cos(float64(z)*0.3)*0.15 +
				math.Sin(float64(x+z)*0.8)*0.05

			boost := float64(m.Height) * (factor + ridge)
			if boost <= 0 {
				continue
			}

			surface := g.surface[col]
			target := surface + int(boost)
			if target > s.MaxHeight-1 {
				target = s.MaxHeight - 1
			}
			if target <= surface {
				continue
			}

			wx, wz := g.world(x, z)
			for y := surface + 1; y <= target; y++ {
				g.place(wx, y, wz, g.mountainBlock(m, y, target))
			}
			g.surface[col] = target
			raised++
		}
	}
	log.Debug("mountain overlay", "raised_columns", raised, "band_width", mountainWidth)
}

// mountainBlock layers snow onto the new stone: the top two blocks above
// the snow line always cap white, the next band is mostly snow, and a
// sparser band trails below it.
func (g *generator) mountainBlock(m *MountainRange, y, target int) string {
	if !m.SnowCap || y < m.SnowHeight-5 {
		return BlockStone
	}
	switch {
	case y >= target-1 && y >= m.SnowHeight:
		return BlockSnow
	case y >= m.SnowHeight && g.rng.Chance(0.7):
		return BlockSnow
	case y < m.SnowHeight && g.rng.Chance(0.3):
		return BlockSnow
	default:
		return BlockStone
	}
}
