package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingQueries wraps Queries to add debug logging around each query.
type LoggingQueries struct {
	*Queries
}

func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
		)
	}
}

// CreateWorld with logging. The voxel payload is summarized by size, not
// dumped.
func (lq *LoggingQueries) CreateWorld(ctx context.Context, arg CreateWorldParams) (World, error) {
	start := time.Now()
	log.Debug("Executing CreateWorld",
		"id", arg.ID,
		"name", arg.Name,
		"seed", arg.Seed,
		"voxel_count", arg.VoxelCount,
		"payload_bytes", len(arg.VoxelData),
	)

	result, err := lq.Queries.CreateWorld(ctx, arg)
	lq.logQuery("CreateWorld", start, err)
	return result, err
}

// GetWorld with logging
func (lq *LoggingQueries) GetWorld(ctx context.Context, id string) (World, error) {
	start := time.Now()
	log.Debug("Executing GetWorld", "id", id)

	result, err := lq.Queries.GetWorld(ctx, id)
	lq.logQuery("GetWorld", start, err)

	if err == nil {
		log.Debug("GetWorld result",
			"id", result.ID,
			"name", result.Name,
			"voxel_count", result.VoxelCount,
			"payload_bytes", len(result.VoxelData),
		)
	}

	return result, err
}

// ListWorlds with logging
func (lq *LoggingQueries) ListWorlds(ctx context.Context) ([]ListWorldsRow, error) {
	start := time.Now()
	log.Debug("Executing ListWorlds")

	result, err := lq.Queries.ListWorlds(ctx)
	lq.logQuery("ListWorlds", start, err)

	if err == nil {
		log.Debug("ListWorlds result", "world_count", len(result))
	}

	return result, err
}

// DeleteWorld with logging
func (lq *LoggingQueries) DeleteWorld(ctx context.Context, id string) (int64, error) {
	start := time.Now()
	log.Debug("Executing DeleteWorld", "id", id)

	result, err := lq.Queries.DeleteWorld(ctx, id)
	lq.logQuery("DeleteWorld", start, err)

	if err == nil {
		log.Debug("DeleteWorld result", "rows_affected", result)
	}

	return result, err
}
