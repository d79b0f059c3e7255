package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/voxelworks/terragen/internal/world"
	"github.com/voxelworks/terragen/internal/worldgen"
)

// output is the file format the CLI writes: the block table alongside the
// voxels so the file is self-describing.
type output struct {
	Seed     int32               `json:"seed"`
	Settings worldgen.Settings   `json:"settings"`
	Blocks   worldgen.BlockTable `json:"blocks"`
	Warnings []string            `json:"warnings,omitempty"`
	Voxels   []world.Voxel       `json:"voxels"`
}

func main() {
	settings := worldgen.DefaultSettings()

	seed := flag.Int("seed", 0, "generation seed")
	out := flag.String("out", "world.json", "output file path")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	mountains := flag.Bool("mountains", false, "raise border mountain ranges")

	flag.IntVar(&settings.Width, "width", settings.Width, "world width in blocks")
	flag.IntVar(&settings.Length, "length", settings.Length, "world length in blocks")
	flag.IntVar(&settings.MaxHeight, "max-height", settings.MaxHeight, "world height in blocks")
	flag.IntVar(&settings.SeaLevel, "sea-level", settings.SeaLevel, "sea level")
	flag.Float64Var(&settings.Scale, "scale", settings.Scale, "noise scale")
	flag.Float64Var(&settings.Roughness, "roughness", settings.Roughness, "terrain roughness")
	flag.Float64Var(&settings.FlatnessFactor, "flatness", settings.FlatnessFactor, "terrain flatness factor")
	flag.Float64Var(&settings.Temperature, "temperature", settings.Temperature, "global temperature bias")
	flag.Float64Var(&settings.OreRarity, "ore-rarity", settings.OreRarity, "ore rarity threshold")
	flag.BoolVar(&settings.GenerateOres, "ores", settings.GenerateOres, "generate ore veins")
	flag.BoolVar(&settings.CompletelyFlat, "flat", settings.CompletelyFlat, "generate a completely flat world")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetPrefix("[worldgen] ")

	if *mountains {
		settings.Mountains = &worldgen.MountainRange{
			Enabled:    true,
			Height:     settings.MaxHeight / 3,
			Size:       0.1,
			SnowHeight: settings.MaxHeight * 2 / 3,
			SnowCap:    true,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blocks := worldgen.DefaultBlockTable()
	vox, warnings, err := worldgen.Generate(ctx, settings, int32(*seed), blocks, func(message string, percent int) {
		log.Info(message, "percent", percent)
	})
	if err != nil {
		log.Fatal("generation failed", "error", err)
	}
	for _, warning := range warnings {
		log.Warn(warning)
	}

	payload, err := world.EncodeVoxels(vox)
	if err != nil {
		log.Fatal("failed to encode voxels", "error", err)
	}
	voxels, err := world.DecodeVoxels(payload)
	if err != nil {
		log.Fatal("failed to decode voxels", "error", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatal("failed to create output file", "error", err, "path", *out)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output{
		Seed:     int32(*seed),
		Settings: settings,
		Blocks:   blocks,
		Warnings: warnings,
		Voxels:   voxels,
	}); err != nil {
		log.Fatal("failed to write output", "error", err, "path", *out)
	}

	log.Info("world written", "path", *out, "voxels", vox.Len())
}
