package worldgen

import "github.com/voxelworks/terragen/internal/noise"

// Biome is a discrete climate category driving material and flora choices.
type Biome uint8

const (
	BiomeSnowyPlains Biome = iota
	BiomeSnowyForest
	BiomeSnowyTaiga
	BiomePlains
	BiomeForest
	BiomeTaiga
	BiomeSwamp
	BiomeSavanna
	BiomeJungle
	BiomeDesert
	BiomeOcean
)

var biomeNames = [...]string{
	"snowy_plains", "snowy_forest", "snowy_taiga", "plains", "forest",
	"taiga", "swamp", "savanna", "jungle", "desert", "ocean",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// climateScale is the frequency of the temperature and humidity fields.
const climateScale = 0.005

// Columns whose eroded height falls below this are classified as ocean
// floor regardless of climate.
const oceanHeightThreshold = 0.22

// classifyBiome buckets a post-offset (temperature, humidity) pair. The
// band boundaries are load-bearing: 0.2/0.4/0.6/0.8 for temperature and
// 0.3/0.6 for humidity.
func classifyBiome(temperature, humidity float64) Biome {
	switch {
	case temperature < 0.2:
		switch {
		case humidity < 0.3:
			return BiomeSnowyPlains
		case humidity < 0.6:
			return BiomeSnowyForest
		default:
			return BiomeSnowyTaiga
		}
	case temperature < 0.4:
		switch {
		case humidity < 0.3:
			return BiomePlains
		case humidity < 0.6:
			return BiomeForest
		default:
			return BiomeTaiga
		}
	case temperature < 0.6:
		switch {
		case humidity < 0.3:
			return BiomePlains
		case humidity < 0.6:
			return BiomeForest
		default:
			return BiomeSwamp
		}
	case temperature < 0.8:
		switch {
		case humidity < 0.3:
			return BiomeSavanna
		case humidity < 0.6:
			return BiomePlains
		default:
			return BiomeJungle
		}
	default:
		switch {
		case humidity < 0.3:
			return BiomeDesert
		case humidity < 0.6:
			return BiomeSavanna
		default:
			return BiomeJungle
		}
	}
}

// buildClimate derives per-column temperature and the biome map. The
// settings temperature shifts the whole field by (t - 0.5). Columns below
// the ocean height threshold are overridden to ocean.
func buildClimate(s Settings, seed int32, height []float64) (temperature []float64, biomes []Biome) {
	temperature = noise.Field2D(s.Width, s.Length, noise.Params{
		Octaves: 1,
		Scale:   climateScale,
		Seed:    seed + seedOffsetTemperature,
	})
	humidity := noise.Field2D(s.Width, s.Length, noise.Params{
		Octaves: 1,
		Scale:   climateScale,
		Seed:    seed + seedOffsetHumidity,
	})

	offset := s.Temperature - 0.5
	biomes = make([]Biome, len(temperature))
	for i := range temperature {
		t := clamp01(temperature[i] + offset)
		temperature[i] = t
		if height[i] < oceanHeightThreshold {
			biomes[i] = BiomeOcean
			continue
		}
		biomes[i] = classifyBiome(t, humidity[i])
	}
	return temperature, biomes
}

// biomeMaterials names the surface layering for a biome. The rock-noise
// cobblestone gate and the underwater override are applied on top by the
// column builder.
type biomeMaterials struct {
	surface    string
	subsurface string
	underwater string
}

var materialsByBiome = map[Biome]biomeMaterials{
	BiomeSnowyPlains: {surface: BlockSnow, subsurface: BlockSnow, underwater: BlockGravel},
	BiomeSnowyForest: {surface: BlockSnow, subsurface: BlockDirt, underwater: BlockGravel},
	BiomeSnowyTaiga:  {surface: BlockSnow, subsurface: BlockDirt, underwater: BlockGravel},
	BiomePlains:      {surface: BlockGrass, subsurface: BlockDirt, underwater: BlockGravel},
	BiomeForest:      {surface: BlockGrass, subsurface: BlockDirt, underwater: BlockGravel},
	BiomeTaiga:       {surface: BlockGrass, subsurface: BlockDirt, underwater: BlockGravel},
	BiomeSwamp:       {surface: BlockGrass, subsurface: BlockClay, underwater: BlockClay},
	BiomeSavanna:     {surface: BlockSand, subsurface: BlockSand, underwater: BlockSand},
	BiomeJungle:      {surface: BlockGrass, subsurface: BlockDirt, underwater: BlockGravel},
	BiomeDesert:      {surface: BlockSand, subsurface: BlockSandstone, underwater: BlockSand},
	BiomeOcean:       {surface: BlockGravel, subsurface: BlockGravel, underwater: BlockSand},
}

// rockGate replaces grass/dirt layering with cobblestone where the rock
// noise exceeds this threshold.
const rockThreshold = 0.8

// snowy reports whether the biome uses cold wood and leaf types.
func (b Biome) snowy() bool {
	return b == BiomeSnowyPlains || b == BiomeSnowyForest || b == BiomeSnowyTaiga
}
