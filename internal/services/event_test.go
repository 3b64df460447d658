package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	bySlug    map[string]*domain.Event
	createErr error
	listErr   error
	seq       int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		bySlug: make(map[string]*domain.Event),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	e.ID = fmt.Sprintf("event-%d", f.seq)
	f.byID[e.ID] = e
	f.bySlug[e.Slug] = e
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Title != nil {
		e.Title = *update.Title
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	if update.Mode != nil {
		e.Mode = *update.Mode
	}
	if update.Tags != nil {
		e.Tags = update.Tags
	}
	if update.Agenda != nil {
		e.Agenda = update.Agenda
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.bySlug, e.Slug)
	return nil
}

func (f *fakeEventRepo) ListByAnyTagExcluding(ctx context.Context, excludeID string, tags []string) ([]*domain.Event, error) {
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.ID == excludeID {
			continue
		}
		for _, tag := range e.Tags {
			if _, ok := tagSet[tag]; ok {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func validInput() domain.EventInput {
	return domain.EventInput{
		Title:       "Cloud Next 2026",
		Description: "The annual cloud conference",
		Date:        "2026-03-01",
		Tags:        []string{"cloud", "devops"},
		Agenda:      []string{"Keynote", "Workshops"},
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success generates slug from title", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)

		event, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "cloud-next-2026", event.Slug)
		assert.NotEmpty(t, event.ID)
	})

	t.Run("slug collision gets a random suffix", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)

		first, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		second, err := svc.Create(ctx, validInput())
		require.NoError(t, err)

		assert.NotEqual(t, first.Slug, second.Slug)
		assert.Contains(t, second.Slug, "cloud-next-2026-")
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), time.Second)
		for _, mutate := range []func(*domain.EventInput){
			func(in *domain.EventInput) { in.Title = "  " },
			func(in *domain.EventInput) { in.Description = "" },
			func(in *domain.EventInput) { in.Date = "" },
		} {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrMissingFields)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), time.Second)
		in := validInput()
		in.Mode = "virtual"
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidField)
	})

	t.Run("blank tags and agenda entries are dropped", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)
		in := validInput()
		in.Tags = []string{" cloud ", "", "  "}
		in.Agenda = []string{"", "Keynote "}

		event, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []string{"cloud"}, event.Tags)
		assert.Equal(t, []string{"Keynote"}, event.Agenda)
	})

	t.Run("repo error", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.createErr = errors.New("store unavailable")
		svc := NewEventService(repo, time.Second)
		_, err := svc.Create(ctx, validInput())
		require.Error(t, err)
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	event, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		title := "Renamed"
		got, err := svc.Update(ctx, event.ID, domain.EventUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "The annual cloud conference", got.Description)
	})

	t.Run("blank required field rejected", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, event.ID, domain.EventUpdate{Title: &blank})
		assert.ErrorIs(t, err, domain.ErrInvalidField)
	})

	t.Run("not found", func(t *testing.T) {
		title := "Renamed"
		_, err := svc.Update(ctx, "missing", domain.EventUpdate{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	event, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, event.ID))

	// Deleted events disappear from lookups and listings.
	_, err = svc.GetBySlug(ctx, event.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	events, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.ErrorIs(t, svc.Delete(ctx, event.ID), domain.ErrNotFound)
}

func TestEventService_FindSimilar(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	source, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	sharesTag := validInput()
	sharesTag.Title = "KubeCon"
	sharesTag.Tags = []string{"cloud", "k8s"}
	shared, err := svc.Create(ctx, sharesTag)
	require.NoError(t, err)

	unrelated := validInput()
	unrelated.Title = "Jazz Night"
	unrelated.Tags = []string{"music"}
	_, err = svc.Create(ctx, unrelated)
	require.NoError(t, err)

	t.Run("returns only events sharing a tag, never the source", func(t *testing.T) {
		similar, err := svc.FindSimilar(ctx, source.Slug)
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, shared.ID, similar[0].ID)
	})

	t.Run("unknown slug yields empty list, not an error", func(t *testing.T) {
		similar, err := svc.FindSimilar(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("event without tags yields empty list", func(t *testing.T) {
		in := validInput()
		in.Title = "Untagged"
		in.Tags = nil
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)

		similar, err := svc.FindSimilar(ctx, created.Slug)
		require.NoError(t, err)
		assert.Empty(t, similar)
	})
}
