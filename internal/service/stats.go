package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/store"
)

// StatsService aggregates per-account collection statistics.
type StatsService struct {
	store  store.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{store: store, logger: logger}
}

// Get returns the account's collection summary. An empty collection yields
// zero counts and a null average rather than an error.
func (s *StatsService) Get(ctx context.Context, ownerID int64) (*domain.Stats, error) {
	stats, err := s.store.GetStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}
