package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/covalenzuela/schedule-sub000/internal/models"
)

// SchoolConfigRepository serves jornada configuration per academic level.
type SchoolConfigRepository struct {
	db *sqlx.DB
}

// NewSchoolConfigRepository creates a new school config repository.
func NewSchoolConfigRepository(db *sqlx.DB) *SchoolConfigRepository {
	return &SchoolConfigRepository{db: db}
}

// GetByAcademicLevel returns the jornada for a level with lunch windows decoded.
func (r *SchoolConfigRepository) GetByAcademicLevel(ctx context.Context, level string) (*models.SchoolDayConfig, error) {
	var cfg models.SchoolDayConfig
	query := `SELECT id, academic_level, start_time, end_time, block_duration_minutes,
			break_duration_minutes, lunch_windows, created_at, updated_at
		FROM school_day_configs WHERE academic_level = $1`
	if err := r.db.GetContext(ctx, &cfg, query, level); err != nil {
		return nil, err
	}

	if len(cfg.LunchWindowsRaw) > 0 {
		windows := make(map[string]models.LunchWindow)
		if err := json.Unmarshal(cfg.LunchWindowsRaw, &windows); err != nil {
			return nil, fmt.Errorf("decode lunch windows for level %s: %w", level, err)
		}
		cfg.LunchWindows = windows
	}
	return &cfg, nil
}
