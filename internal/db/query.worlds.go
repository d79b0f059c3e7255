package db

import (
	"context"
	"database/sql"
)

const createWorld = `
INSERT INTO worlds (id, name, seed, settings, voxel_data, voxel_count, warnings)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, seed, settings, voxel_data, voxel_count, warnings, created_at
`

type CreateWorldParams struct {
	ID         string
	Name       string
	Seed       int64
	Settings   string
	VoxelData  []byte
	VoxelCount int64
	Warnings   sql.NullString
}

func (q *Queries) CreateWorld(ctx context.Context, arg CreateWorldParams) (World, error) {
	row := q.db.QueryRowContext(ctx, createWorld,
		arg.ID,
		arg.Name,
		arg.Seed,
		arg.Settings,
		arg.VoxelData,
		arg.VoxelCount,
		arg.Warnings,
	)
	var w World
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Seed,
		&w.Settings,
		&w.VoxelData,
		&w.VoxelCount,
		&w.Warnings,
		&w.CreatedAt,
	)
	return w, err
}

const getWorld = `
SELECT id, name, seed, settings, voxel_data, voxel_count, warnings, created_at
FROM worlds
WHERE id = ?
`

func (q *Queries) GetWorld(ctx context.Context, id string) (World, error) {
	row := q.db.QueryRowContext(ctx, getWorld, id)
	var w World
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Seed,
		&w.Settings,
		&w.VoxelData,
		&w.VoxelCount,
		&w.Warnings,
		&w.CreatedAt,
	)
	return w, err
}

const listWorlds = `
SELECT id, name, seed, settings, voxel_count, warnings, created_at
FROM worlds
ORDER BY created_at DESC
`

// ListWorldsRow omits the voxel payload; listings never need it.
type ListWorldsRow struct {
	ID         string
	Name       string
	Seed       int64
	Settings   string
	VoxelCount int64
	Warnings   sql.NullString
	CreatedAt  sql.NullTime
}

func (q *Queries) ListWorlds(ctx context.Context) ([]ListWorldsRow, error) {
	rows, err := q.db.QueryContext(ctx, listWorlds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListWorldsRow
	for rows.Next() {
		var w ListWorldsRow
		if err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.Seed,
			&w.Settings,
			&w.VoxelCount,
			&w.Warnings,
			&w.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteWorld = `
DELETE FROM worlds
WHERE id = ?
`

func (q *Queries) DeleteWorld(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteWorld, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
