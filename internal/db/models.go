package db

import "database/sql"

// World is a stored generation result. Settings is the JSON-encoded
// request settings, VoxelData the gzip-compressed voxel payload.
type World struct {
	ID         string
	Name       string
	Seed       int64
	Settings   string
	VoxelData  []byte
	VoxelCount int64
	Warnings   sql.NullString
	CreatedAt  sql.NullTime
}
