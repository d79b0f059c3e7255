package worldgen

import (
	"math"

	"github.com/voxelworks/terragen/internal/noise"
)

// Seed offsets keep every noise layer correlated-but-distinct per seed.
// These values are part of the reproducibility contract: changing one
// changes every world generated from an existing seed.
const (
	seedOffsetContinental = 1
	seedOffsetHill        = 2
	seedOffsetDetail      = 3
	seedOffsetRock        = 4
	seedOffsetDepth       = 5
	seedOffsetTemperature = 6
	seedOffsetHumidity    = 7
	seedOffsetDensity     = 8
	seedOffsetSmallCave   = 9
	seedOffsetLargeCave   = 10
	seedOffsetOre         = 11
	seedOffsetLake        = 12
	seedOffsetRiver       = 13
	seedOffsetAux         = 977
)

// flatHeight is the constant normalized elevation of completely flat worlds.
const flatHeight = 0.25

// Erosion works on integer block levels derived from the normalized height.
const (
	erosionBase  = 36.0
	erosionRange = 28.0
)

// buildHeightmap composites continental, hill and detail noise into a
// smoothed, eroded elevation field in [0,1]. The rock field is returned
// alongside: it does not contribute to height but gates surface materials
// later.
func buildHeightmap(s Settings, seed int32) (height, rock []float64) {
	w, l := s.Width, s.Length

	rock = noise.Field2D(w, l, noise.Params{
		Octaves: 4,
		Scale:   s.Scale,
		Seed:    seed + seedOffsetRock,
	})

	if s.CompletelyFlat {
		height = make([]float64, w*l)
		for i := range height {
			height[i] = flatHeight
		}
		return height, rock
	}

	continental := noise.Field2D(w, l, noise.Params{
		Octaves: 1,
		Scale:   s.Scale * 0.25,
		Seed:    seed + seedOffsetContinental,
	})
	hill := noise.Field2D(w, l, noise.Params{
		Octaves: 3,
		Scale:   s.Scale,
		Seed:    seed + seedOffsetHill,
	})
	detail := noise.Field2D(w, l, noise.Params{
		Octaves: 5,
		Scale:   s.Scale * 2,
		Seed:    seed + seedOffsetDetail,
	})
	depth := noise.Field2D(w, l, noise.Params{
		Octaves: 2,
		Scale:   s.Scale * 0.5,
		Seed:    seed + seedOffsetDepth,
	})

	flat := clamp01(s.FlatnessFactor)
	// Largest value the composite below can reach; dividing by it keeps
	// the field inside [0,1] without clipping peaks.
	maxComposite := (1 + (1-flat)*1.5) * (1 + (1-flat)*0.3)

	height = make([]float64, w*l)
	for i := range height {
		h := continental[i] + hill[i]*(1-flat) + detail[i]*(1-flat)*0.5
		h *= 1 + depth[i]*(1-flat)*0.3
		h /= maxComposite
		height[i] = clamp01(h*(1-flat) + 0.5*flat)
	}

	height = smoothHeights(height, w, l, s.Smoothing, s.TerrainBlend)
	erodeHeights(height, w, l, s.Roughness)
	return height, rock
}

// smoothHeights applies a radial weighted blur (weight 1/(1+distance))
// blended with the raw value by the smoothing factor.
func smoothHeights(height []float64, w, l int, smoothing, terrainBlend float64) []float64 {
	if smoothing <= 0 {
		return height
	}
	radius := int(2 + terrainBlend*2)
	out := make([]float64, len(height))
	for z := 0; z < l; z++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			weight := 0.0
			for dz := -radius; dz <= radius; dz++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, nz := x+dx, z+dz
					if nx < 0 || nx >= w || nz < 0 || nz >= l {
						continue
					}
					d := math.Sqrt(float64(dx*dx + dz*dz))
					wgt := 1 / (1 + d)
					sum += height[nz*w+nx] * wgt
					weight += wgt
				}
			}
			i := z*w + x
			blurred := sum / weight
			out[i] = height[i]*(1-smoothing) + blurred*smoothing
		}
	}
	return out
}

// erodeHeights runs a cellular erosion pass on integer block levels: no
// cell may sit more than one level above its lowest 3x3 neighbor. Repeats
// until the field settles.
func erodeHeights(height []float64, w, l int, roughness float64) {
	if roughness <= 0 {
		return
	}

	levels := make([]int, len(height))
	for i, h := range height {
		levels[i] = int(erosionBase + h*erosionRange*roughness)
	}

	for pass := 0; pass < 8; pass++ {
		changed := false
		for z := 0; z < l; z++ {
			for x := 0; x < w; x++ {
				i := z*w + x
				lowest := levels[i]
				for dz := -1; dz <= 1; dz++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dz == 0 {
							continue
						}
						nx, nz := x+dx, z+dz
						if nx < 0 || nx >= w || nz < 0 || nz >= l {
							continue
						}
						if lv := levels[nz*w+nx]; lv < lowest {
							lowest = lv
						}
					}
				}
				if levels[i] > lowest+1 {
					levels[i] = lowest + 1
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for i, lv := range levels {
		height[i] = clamp01((float64(lv) - erosionBase) / (erosionRange * roughness))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
