package world

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/voxelworks/terragen/internal/db"
	"github.com/voxelworks/terragen/internal/worldgen"
)

// ErrNotFound is returned when no stored world matches the requested id.
var ErrNotFound = errors.New("world not found")

// Manager generates worlds and persists them. All generation runs
// synchronously on the caller's goroutine.
type Manager struct {
	db      *sql.DB
	queries *db.LoggingQueries
	blocks  worldgen.BlockTable
}

func NewManager(database *sql.DB) *Manager {
	return &Manager{
		db:      database,
		queries: db.NewLoggingQueries(database),
		blocks:  worldgen.DefaultBlockTable(),
	}
}

// Blocks exposes the block name to id table used for every generation.
func (m *Manager) Blocks() worldgen.BlockTable {
	return m.blocks
}

// Create generates a world from the given settings and stores the result.
// A nil blocks table falls back to the manager's default registry.
func (m *Manager) Create(ctx context.Context, name string, seed int32, settings worldgen.Settings, blocks worldgen.BlockTable) (*Detail, error) {
	if blocks == nil {
		blocks = m.blocks
	}
	vox, warnings, err := worldgen.Generate(ctx, settings, seed, blocks, nil)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	payload, err := EncodeVoxels(vox)
	if err != nil {
		return nil, err
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	var warningsCol sql.NullString
	if len(warnings) > 0 {
		encoded, err := json.Marshal(warnings)
		if err != nil {
			return nil, fmt.Errorf("encode warnings: %w", err)
		}
		warningsCol = sql.NullString{String: string(encoded), Valid: true}
	}

	record, err := m.queries.CreateWorld(ctx, db.CreateWorldParams{
		ID:         uuid.New().String(),
		Name:       name,
		Seed:       int64(seed),
		Settings:   string(settingsJSON),
		VoxelData:  payload,
		VoxelCount: int64(vox.Len()),
		Warnings:   warningsCol,
	})
	if err != nil {
		return nil, fmt.Errorf("store world: %w", err)
	}

	log.Info("world created",
		"id", record.ID, "name", name, "seed", seed,
		"voxels", vox.Len(), "payload_bytes", len(payload), "warnings", len(warnings))

	voxels, err := DecodeVoxels(payload)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Summary: Summary{
			ID:         record.ID,
			Name:       record.Name,
			Seed:       seed,
			Settings:   settings,
			VoxelCount: record.VoxelCount,
			Warnings:   warnings,
			CreatedAt:  record.CreatedAt.Time,
		},
		Voxels: voxels,
	}, nil
}

// Get loads a stored world including its voxels.
func (m *Manager) Get(ctx context.Context, id string) (*Detail, error) {
	record, err := m.queries.GetWorld(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	summary, err := summaryFromRecord(record.ID, record.Name, record.Seed, record.Settings, record.VoxelCount, record.Warnings, record.CreatedAt)
	if err != nil {
		return nil, err
	}
	voxels, err := DecodeVoxels(record.VoxelData)
	if err != nil {
		return nil, err
	}
	return &Detail{Summary: *summary, Voxels: voxels}, nil
}

// List returns stored world summaries, newest first.
func (m *Manager) List(ctx context.Context) ([]Summary, error) {
	rows, err := m.queries.ListWorlds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summary, err := summaryFromRecord(row.ID, row.Name, row.Seed, row.Settings, row.VoxelCount, row.Warnings, row.CreatedAt)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// Delete removes a stored world.
func (m *Manager) Delete(ctx context.Context, id string) error {
	affected, err := m.queries.DeleteWorld(ctx, id)
	if err != nil {
		return fmt.Errorf("delete world: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func summaryFromRecord(id, name string, seed int64, settingsJSON string, voxelCount int64, warnings sql.NullString, createdAt sql.NullTime) (*Summary, error) {
	var settings worldgen.Settings
	if err := json.Unmarshal([]byte(settingsJSON), &settings); err != nil {
		return nil, fmt.Errorf("decode stored settings for %s: %w", id, err)
	}
	summary := &Summary{
		ID:         id,
		Name:       name,
		Seed:       int32(seed),
		Settings:   settings,
		VoxelCount: voxelCount,
		CreatedAt:  createdAt.Time,
	}
	if warnings.Valid {
		if err := json.Unmarshal([]byte(warnings.String), &summary.Warnings); err != nil {
			return nil, fmt.Errorf("decode stored warnings for %s: %w", id, err)
		}
	}
	return summary, nil
}
