package worldgen

import "github.com/voxelworks/terragen/internal/noise"

// densityReferenceHeight anchors the solid/air crossover; a column at
// normalized height 0.5 surfaces around y=32.
const densityReferenceHeight = 32.0

const densityScale = 0.02

// densityAmplitude maps roughness to the 3D noise contribution with a
// non-linear band: gentle worlds get less overhang, extreme roughness
// grows it slowly past the fixed middle band.
func densityAmplitude(roughness float64) float64 {
	switch {
	case roughness < 0.5:
		return 4.0 + roughness*4.0
	case roughness > 1.5:
		return 6.0 + (roughness-1.5)*2.0
	default:
		return 6.0
	}
}

// biomeDensityScale nudges the reference height per biome: dry biomes sit
// slightly lighter, forested ones slightly heavier.
func biomeDensityScale(b Biome) float64 {
	switch b {
	case BiomeDesert, BiomeSavanna:
		return 0.95
	case BiomeForest, BiomeJungle, BiomeTaiga, BiomeSnowyForest, BiomeSnowyTaiga:
		return 1.05
	default:
		return 1.0
	}
}

// buildDensity produces the signed 3D field that locates each column's
// surface. Sign convention: >= 0 is solid, < 0 is air. y <= 1 is forced
// solid so the world always has a floor.
func buildDensity(s Settings, seed int32, height []float64, biomes []Biome) []float64 {
	w, l, maxH := s.Width, s.Length, s.MaxHeight
	density := make([]float64, w*l*maxH)

	if s.CompletelyFlat {
		for y := 0; y < maxH; y++ {
			for z := 0; z < l; z++ {
				for x := 0; x < w; x++ {
					col := z*w + x
					solidTop := 16 + height[col]*densityReferenceHeight
					d := -10.0
					if y <= 1 || float64(y) <= solidTop {
						d = 10.0
					}
					density[(y*l+z)*w+x] = d
				}
			}
		}
		return density
	}

	field := noise.Field3D(w, maxH, l, noise.Params{
		Octaves: 2,
		Scale:   densityScale,
		Seed:    seed + seedOffsetDensity,
	})
	amp := densityAmplitude(s.Roughness) * (1 - clamp01(s.FlatnessFactor))

	for y := 0; y < maxH; y++ {
		for z := 0; z < l; z++ {
			for x := 0; x < w; x++ {
				col := z*w + x
				i := (y*l+z)*w + x
				if y <= 1 {
					density[i] = 10
					continue
				}
				ref := (16 + height[col]*densityReferenceHeight) * biomeDensityScale(biomes[col])
				density[i] = ref - float64(y) + (field[i]-0.5)*2*amp
			}
		}
	}
	return density
}

// surfaceY extracts the topmost solid y of a column: the highest y with
// density >= 0 whose cell above is air, or the top of the world when the
// column never goes to air.
func surfaceY(density []float64, w, l, maxH, x, z int) int {
	for y := maxH - 1; y >= 0; y-- {
		if density[(y*l+z)*w+x] >= 0 {
			return y
		}
	}
	return 0
}
