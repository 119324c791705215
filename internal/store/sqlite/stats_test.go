package sqlite

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/reellog/reellog-server/internal/domain"
)

func TestGetStats_EmptyCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "empty")

	stats, err := s.GetStats(ctx, owner)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalMovies != 0 {
		t.Errorf("TotalMovies: got %d, want 0", stats.TotalMovies)
	}
	if stats.AverageRating != nil {
		t.Errorf("AverageRating: got %v, want nil", stats.AverageRating)
	}
	if stats.MonthsLogged != 0 {
		t.Errorf("MonthsLogged: got %d, want 0", stats.MonthsLogged)
	}
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "statistician")

	// Two rated, one unrated; watch dates spanning two months plus one unset.
	m1 := makeTestMovie(owner, "One")
	m1.Rating = ratingPtr(7)
	m1.WatchDate = timePtr(time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))

	m2 := makeTestMovie(owner, "Two")
	m2.Rating = ratingPtr(9)
	m2.WatchDate = timePtr(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))

	m3 := makeTestMovie(owner, "Three")
	m3.WatchDate = timePtr(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	m4 := makeTestMovie(owner, "Four")

	for _, m := range []*domain.Movie{m1, m2, m3, m4} {
		if err := s.CreateMovie(ctx, m, nil); err != nil {
			t.Fatalf("CreateMovie(%s): %v", m.Title, err)
		}
	}

	stats, err := s.GetStats(ctx, owner)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalMovies != 4 {
		t.Errorf("TotalMovies: got %d, want 4", stats.TotalMovies)
	}
	if stats.AverageRating == nil || math.Abs(*stats.AverageRating-8) > 1e-9 {
		t.Errorf("AverageRating: got %v, want 8", stats.AverageRating)
	}
	// February and April; the unset watch date doesn't count.
	if stats.MonthsLogged != 2 {
		t.Errorf("MonthsLogged: got %d, want 2", stats.MonthsLogged)
	}
}

func TestGetStats_OwnerScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "mine")
	other := makeTestOwner(t, s, "yours")

	m := makeTestMovie(other, "Not Mine")
	m.Rating = ratingPtr(10)
	if err := s.CreateMovie(ctx, m, nil); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	stats, err := s.GetStats(ctx, owner)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalMovies != 0 {
		t.Errorf("TotalMovies: got %d, want 0", stats.TotalMovies)
	}
	if stats.AverageRating != nil {
		t.Errorf("AverageRating: got %v, want nil", stats.AverageRating)
	}
}
