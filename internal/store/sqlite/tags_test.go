package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/store"
)

func TestFindOrCreateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, created, err := s.FindOrCreateTag(ctx, "slow burn")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if !created {
		t.Error("expected created=true on first use")
	}
	if tag.ID == 0 {
		t.Error("expected assigned tag ID")
	}
	if tag.Name != "slow burn" {
		t.Errorf("Name: got %q, want %q", tag.Name, "slow burn")
	}

	// Second call returns the same row.
	again, created, err := s.FindOrCreateTag(ctx, "slow burn")
	if err != nil {
		t.Fatalf("FindOrCreateTag second call: %v", err)
	}
	if created {
		t.Error("expected created=false on second use")
	}
	if again.ID != tag.ID {
		t.Errorf("ID: got %d, want %d", again.ID, tag.ID)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zebra", "apple", "mango"} {
		if _, _, err := s.FindOrCreateTag(ctx, name); err != nil {
			t.Fatalf("FindOrCreateTag(%s): %v", name, err)
		}
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("got %d tags, want 3", len(tags))
	}
	// Sorted by name.
	want := []string{"apple", "mango", "zebra"}
	for i, tag := range tags {
		if tag.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, tag.Name, want[i])
		}
	}
}

func TestListTags_Empty(t *testing.T) {
	s := newTestStore(t)

	tags, err := s.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(tags) != 0 {
		t.Errorf("got %d tags, want 0", len(tags))
	}
}

func TestAttachTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "tagger")

	movie := makeTestMovie(owner, "Tagged Movie")
	if err := s.CreateMovie(ctx, movie, nil); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	tag, err := s.AttachTag(ctx, owner, movie.ID, "favourite")
	if err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	if tag.Name != "favourite" {
		t.Errorf("Name: got %q, want %q", tag.Name, "favourite")
	}

	// Attaching the same tag again is a no-op, not an error.
	again, err := s.AttachTag(ctx, owner, movie.ID, "favourite")
	if err != nil {
		t.Fatalf("AttachTag repeat: %v", err)
	}
	if again.ID != tag.ID {
		t.Errorf("ID: got %d, want %d", again.ID, tag.ID)
	}

	got, err := s.GetMovie(ctx, owner, movie.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "favourite" {
		t.Errorf("Tags: got %v, want [favourite]", got.Tags)
	}
}

func TestAttachTag_MovieNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "hopeful")

	_, err := s.AttachTag(ctx, owner, 55555, "orphan")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAttachTag_OwnerScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "painter")
	other := makeTestOwner(t, s, "graffiti")

	movie := makeTestMovie(owner, "Canvas")
	if err := s.CreateMovie(ctx, movie, nil); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	_, err := s.AttachTag(ctx, other, movie.ID, "vandalism")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}
}

func TestDetachTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "untagger")

	movie := makeTestMovie(owner, "Detach Me")
	if err := s.CreateMovie(ctx, movie, nil); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	tag, err := s.AttachTag(ctx, owner, movie.ID, "temporary")
	if err != nil {
		t.Fatalf("AttachTag: %v", err)
	}

	if err := s.DetachTag(ctx, owner, movie.ID, tag.ID); err != nil {
		t.Fatalf("DetachTag: %v", err)
	}

	got, err := s.GetMovie(ctx, owner, movie.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags: got %v, want empty", got.Tags)
	}

	// Detaching is idempotent: an already-absent association succeeds.
	if err := s.DetachTag(ctx, owner, movie.ID, tag.ID); err != nil {
		t.Errorf("DetachTag repeat: %v", err)
	}

	// The tag row survives in the vocabulary.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "temporary" {
		t.Errorf("vocabulary: got %v, want [temporary]", tags)
	}
}

func TestDetachTag_OwnerScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "curator")
	other := makeTestOwner(t, s, "meddler")

	movie := makeTestMovie(owner, "Curated")
	if err := s.CreateMovie(ctx, movie, nil); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	tag, err := s.AttachTag(ctx, owner, movie.ID, "pinned")
	if err != nil {
		t.Fatalf("AttachTag: %v", err)
	}

	err = s.DetachTag(ctx, other, movie.ID, tag.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}

	// Association still present.
	got, err := s.GetMovie(ctx, owner, movie.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if len(got.Tags) != 1 {
		t.Errorf("Tags: got %v, want [pinned]", got.Tags)
	}
}

func TestTagsSharedAcrossMovies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := makeTestOwner(t, s, "binger")

	m1 := makeTestMovie(owner, "First")
	m2 := makeTestMovie(owner, "Second")
	if err := s.CreateMovie(ctx, m1, []string{"rewatch"}); err != nil {
		t.Fatalf("CreateMovie m1: %v", err)
	}
	if err := s.CreateMovie(ctx, m2, []string{"rewatch"}); err != nil {
		t.Fatalf("CreateMovie m2: %v", err)
	}

	// One vocabulary row, two associations.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("vocabulary: got %d tags, want 1", len(tags))
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM movie_tags WHERE tag_id = ?", tags[0].ID).Scan(&n); err != nil {
		t.Fatalf("count movie_tags: %v", err)
	}
	if n != 2 {
		t.Errorf("associations: got %d, want 2", n)
	}
}

func TestFindOrCreateTag_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	start := make(chan struct{})
	type outcome struct {
		tag     *domain.Tag
		created bool
		err     error
	}
	results := make(chan outcome, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tag, created, err := s.FindOrCreateTag(ctx, "one winner")
			results <- outcome{tag, created, err}
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var createdCount int
	var id int64
	for r := range results {
		if r.err != nil {
			t.Fatalf("FindOrCreateTag: %v", r.err)
		}
		if r.created {
			createdCount++
		}
		if id == 0 {
			id = r.tag.ID
		}
		if r.tag.ID != id {
			t.Errorf("ID: got %d, want %d", r.tag.ID, id)
		}
	}
	if createdCount != 1 {
		t.Errorf("created: got %d callers reporting creation, want 1", createdCount)
	}

	// One vocabulary row, not eight.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("vocabulary: got %d tags, want 1", len(tags))
	}
}
