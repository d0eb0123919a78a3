package repositories

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// StatsRepository fetches the dashboard snapshot. Results are never cached.
type StatsRepository interface {
	Get(ctx context.Context) (*entities.Stats, error)
}
