package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reellog/reellog-server/internal/domain"
	domainerrors "github.com/reellog/reellog-server/internal/errors"
	"github.com/reellog/reellog-server/internal/store"
	"github.com/reellog/reellog-server/internal/util"
)

// TagService manages the global tag vocabulary and its associations with
// collection entries.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// List returns the whole vocabulary ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Attach associates a tag with one of the account's movies, creating the
// tag if the vocabulary doesn't have it yet. Attaching an already-attached
// tag succeeds without change.
func (s *TagService) Attach(ctx context.Context, ownerID, movieID int64, name string) (*domain.Tag, error) {
	normalized := util.NormalizeTagName(name)
	if normalized == "" {
		return nil, domainerrors.Validation("tag name is required")
	}

	tag, err := s.store.AttachTag(ctx, ownerID, movieID, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("attach tag: %w", err)
	}

	s.logger.Info("tag attached",
		"account_id", ownerID,
		"movie_id", movieID,
		"tag", tag.Name,
	)
	return tag, nil
}

// Detach removes a tag association from one of the account's movies.
// Detaching a tag that isn't attached succeeds without change; the tag row
// stays in the vocabulary either way.
func (s *TagService) Detach(ctx context.Context, ownerID, movieID, tagID int64) error {
	if err := s.store.DetachTag(ctx, ownerID, movieID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("movie not found")
		}
		return fmt.Errorf("detach tag: %w", err)
	}
	return nil
}
