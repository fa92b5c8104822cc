package ports

import (
	"context"

	"github.com/radiogen/backend/internal/core/domain"
)

// RunRepository persists radio run history.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RadioRun) error
	UpdateRunFeatures(ctx context.Context, runID string, features map[string]float64) error
	ListRecent(ctx context.Context, limit int) ([]domain.RadioRun, error)
}
