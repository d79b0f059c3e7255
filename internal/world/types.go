package world

import (
	"time"

	"github.com/voxelworks/terragen/internal/worldgen"
)

// Voxel is one placed block in world coordinates.
type Voxel struct {
	X  int              `json:"x"`
	Y  int              `json:"y"`
	Z  int              `json:"z"`
	ID worldgen.BlockID `json:"id"`
}

// Summary is the listing view of a stored world, without the voxel
// payload.
type Summary struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Seed       int32             `json:"seed"`
	Settings   worldgen.Settings `json:"settings"`
	VoxelCount int64             `json:"voxel_count"`
	Warnings   []string          `json:"warnings,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Detail is a stored world including its voxels.
type Detail struct {
	Summary
	Voxels []Voxel `json:"voxels"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
