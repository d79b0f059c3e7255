// Package worldgen synthesizes a complete voxel world from a seed and a
// parameter set: heightmap, biomes, surface layering, water bodies, caves,
// ore veins, mountain ranges and vegetation, emitted as a sparse voxel map.
package worldgen

import "fmt"

// MountainRange configures the border mountain overlay.
type MountainRange struct {
	Enabled    bool    `json:"enabled"`
	Height     int     `json:"height"`
	Size       float64 `json:"size"`
	SnowHeight int     `json:"snowHeight"`
	SnowCap    bool    `json:"snowCap"`
}

// Settings is the immutable input parameter set for one generation call.
type Settings struct {
	Width          int     `json:"width"`
	Length         int     `json:"length"`
	MaxHeight      int     `json:"maxHeight"`
	Scale          float64 `json:"scale"`
	Roughness      float64 `json:"roughness"`
	FlatnessFactor float64 `json:"flatnessFactor"`
	Smoothing      float64 `json:"smoothing"`
	TerrainBlend   float64 `json:"terrainBlend"`
	SeaLevel       int     `json:"seaLevel"`
	Temperature    float64 `json:"temperature"`
	RiverFreq      float64 `json:"riverFreq"`
	OreRarity      float64 `json:"oreRarity"`
	GenerateOres   bool    `json:"generateOres"`
	CompletelyFlat bool    `json:"isCompletelyFlat"`

	Mountains *MountainRange `json:"mountainRange,omitempty"`
}

// maxAxis is the largest world dimension the packed voxel key can address.
const maxAxis = 1 << 20

// Validate rejects degenerate settings before any generation work begins.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Length <= 0 || s.MaxHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %dx%dx%d", s.Width, s.MaxHeight, s.Length)
	}
	if s.Width > maxAxis || s.Length > maxAxis || s.MaxHeight > maxAxis {
		return fmt.Errorf("world dimensions exceed addressable range %d", maxAxis)
	}
	if s.Temperature < 0 || s.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0,1], got %v", s.Temperature)
	}
	if s.OreRarity < 0 || s.OreRarity > 1 {
		return fmt.Errorf("oreRarity must be in [0,1], got %v", s.OreRarity)
	}
	if s.SeaLevel < 0 || s.SeaLevel >= s.MaxHeight {
		return fmt.Errorf("seaLevel must be in [0,%d), got %d", s.MaxHeight, s.SeaLevel)
	}
	return nil
}

// DefaultSettings returns the parameter set the server uses when a request
// leaves a field unset.
func DefaultSettings() Settings {
	return Settings{
		Width:          128,
		Length:         128,
		MaxHeight:      96,
		Scale:          0.05,
		Roughness:      1,
		FlatnessFactor: 0,
		Smoothing:      0.5,
		TerrainBlend:   1,
		SeaLevel:       32,
		Temperature:    0.5,
		RiverFreq:      0.05,
		OreRarity:      0.78,
		GenerateOres:   true,
	}
}
