package worldgen

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxelworks/terragen/internal/noise"
)

// ProgressFunc receives stage messages with a monotonically non-decreasing
// percentage; the final call is always exactly 100. It is invoked
// synchronously on the generating goroutine and must not block.
type ProgressFunc func(message string, percent int)

// generator carries the shared state the sequential stages read and
// mutate. Every field is created fresh per Generate call; only the voxel
// map escapes.
type generator struct {
	s    Settings
	seed int32

	// rng is the auxiliary random stream for draws outside the noise
	// fields (vegetation gates, bed materials, the emerald gate). Stages
	// consume it in a fixed order, which keeps output deterministic.
	rng *noise.LCG

	blocks *blockSet
	vox    *VoxelMap

	height      []float64
	rock        []float64
	temperature []float64
	biomes      []Biome
	density     []float64

	// surface tracks the topmost solid y per column and is kept current
	// as hydrology and the mountain overlay reshape the terrain.
	surface []int

	water    []bool
	waterBed []int
	river    []bool

	progress    ProgressFunc
	lastPercent int
}

// Generate synthesizes a complete voxel world. It validates settings,
// runs the stages strictly sequentially, and returns the sparse voxel map
// together with a warning per block name missing from the supplied table.
// The context is only checked between stages; a started stage always runs
// to completion.
func Generate(ctx context.Context, s Settings, seed int32, blocks BlockTable, onProgress ProgressFunc) (*VoxelMap, []string, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}

	start := time.Now()
	log.Debug("starting world generation",
		"seed", seed, "width", s.Width, "length", s.Length, "max_height", s.MaxHeight, "flat", s.CompletelyFlat)

	g := &generator{
		s:        s,
		seed:     seed,
		rng:      noise.NewLCG(seed + seedOffsetAux),
		blocks:   newBlockSet(blocks),
		vox:      NewVoxelMap(),
		surface:  make([]int, s.Width*s.Length),
		water:    make([]bool, s.Width*s.Length),
		waterBed: make([]int, s.Width*s.Length),
		river:    make([]bool, s.Width*s.Length),
		progress: onProgress,
	}

	type stage struct {
		name    string
		percent int
		run     func(context.Context)
		skip    bool
	}
	stages := []stage{
		{name: "Building heightmap", percent: 5, run: g.stageHeightmap},
		{name: "Classifying climate", percent: 15, run: g.stageClimate},
		{name: "Shaping terrain density", percent: 25, run: g.stageDensity},
		{name: "Building terrain columns", percent: 40, run: g.stageColumns},
		{name: "Simulating water bodies", percent: 60, run: g.stageHydrology, skip: s.CompletelyFlat},
		{name: "Carving caves and ores", percent: 75, run: g.stageCavesAndOres, skip: s.CompletelyFlat},
		{name: "Raising mountain ranges", percent: 85, run: g.stageMountains, skip: s.CompletelyFlat},
		{name: "Placing vegetation", percent: 95, run: g.stageVegetation, skip: s.CompletelyFlat},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if st.skip {
			continue
		}
		g.report(st.name, st.percent)
		stageStart := time.Now()
		st.run(ctx)
		log.Debug("stage completed", "stage", st.name, "duration", time.Since(stageStart), "voxels", g.vox.Len())
	}

	g.report("Done", 100)
	warnings := g.blocks.warnings()
	log.Info("world generation completed",
		"seed", seed, "voxels", g.vox.Len(), "warnings", len(warnings), "duration", time.Since(start))
	return g.vox, warnings, nil
}

// report forwards progress, clamping so the sequence never decreases.
func (g *generator) report(message string, percent int) {
	if percent < g.lastPercent {
		percent = g.lastPercent
	}
	g.lastPercent = percent
	if g.progress != nil {
		g.progress(message, percent)
	}
}

// reportRows emits interpolated progress every ~10% of z-rows inside a
// long stage loop.
func (g *generator) reportRows(message string, z, from, to int) {
	rows := g.s.Length
	step := rows / 10
	if step == 0 || z%step != 0 {
		return
	}
	g.report(message, from+(to-from)*z/rows)
}

func (g *generator) col(x, z int) int {
	return z*g.s.Width + x
}

// world converts grid coordinates to centered world coordinates.
func (g *generator) world(x, z int) (int, int) {
	return x - g.s.Width/2, z - g.s.Length/2
}

// place writes a named block, skipping (and recording) names missing from
// the block table.
func (g *generator) place(x, y, z int, name string) {
	if id, ok := g.blocks.id(name); ok {
		g.vox.Set(x, y, z, id)
	}
}

func (g *generator) stageHeightmap(context.Context) {
	g.height, g.rock = buildHeightmap(g.s, g.seed)
}

func (g *generator) stageClimate(context.Context) {
	g.temperature, g.biomes = buildClimate(g.s, g.seed, g.height)
}

func (g *generator) stageDensity(context.Context) {
	g.density = buildDensity(g.s, g.seed, g.height, g.biomes)
}
