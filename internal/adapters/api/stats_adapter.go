package api

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// StatsAdapter implements StatsRepository against /stats
type StatsAdapter struct {
	client Requester
}

// NewStatsAdapter creates a new stats adapter
func NewStatsAdapter(client Requester) repositories.StatsRepository {
	return &StatsAdapter{client: client}
}

// Get fetches a fresh dashboard snapshot
func (a *StatsAdapter) Get(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	if err := a.client.Get(ctx, StatsEndpoint, &stats); err != nil {
		logFailure(ctx, "stats", "get", err).Msg("Error fetching stats")
		return nil, err
	}
	return &stats, nil
}
