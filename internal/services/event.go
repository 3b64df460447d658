package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"eventdeck/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Date = strings.TrimSpace(input.Date)
	if input.Title == "" || input.Description == "" || input.Date == "" {
		return nil, domain.ErrMissingFields
	}
	mode := strings.TrimSpace(strings.ToLower(input.Mode))
	if mode != "" && mode != domain.ModeOnline && mode != domain.ModeOffline && mode != domain.ModeHybrid {
		return nil, fmt.Errorf("%w: mode must be online, offline, or hybrid", domain.ErrInvalidField)
	}

	now := time.Now()
	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Overview:    strings.TrimSpace(input.Overview),
		Image:       strings.TrimSpace(input.Image),
		Venue:       strings.TrimSpace(input.Venue),
		Location:    strings.TrimSpace(input.Location),
		Date:        input.Date,
		Time:        strings.TrimSpace(input.Time),
		Mode:        mode,
		Audience:    strings.TrimSpace(input.Audience),
		Organizer:   strings.TrimSpace(input.Organizer),
		Tags:        dropBlank(input.Tags),
		Agenda:      dropBlank(input.Agenda),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	slug, err := s.uniqueSlug(ctx, event.Title)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}
	event.Slug = slug

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrInvalidField)
	}
	if update.Description != nil && strings.TrimSpace(*update.Description) == "" {
		return nil, fmt.Errorf("%w: description cannot be blank", domain.ErrInvalidField)
	}
	if update.Date != nil && strings.TrimSpace(*update.Date) == "" {
		return nil, fmt.Errorf("%w: date cannot be blank", domain.ErrInvalidField)
	}
	if update.Mode != nil {
		mode := strings.TrimSpace(strings.ToLower(*update.Mode))
		if mode != "" && mode != domain.ModeOnline && mode != domain.ModeOffline && mode != domain.ModeHybrid {
			return nil, fmt.Errorf("%w: mode must be online, offline, or hybrid", domain.ErrInvalidField)
		}
		update.Mode = &mode
	}
	if update.Tags != nil {
		update.Tags = dropBlank(update.Tags)
	}
	if update.Agenda != nil {
		update.Agenda = dropBlank(update.Agenda)
	}

	event, err := s.eventRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// FindSimilar returns all other events sharing at least one tag with the
// event identified by slug. Lookup failures yield an empty list, not an
// error.
func (s *eventService) FindSimilar(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return []*domain.Event{}, nil
	}
	if len(event.Tags) == 0 {
		return []*domain.Event{}, nil
	}
	similar, err := s.eventRepo.ListByAnyTagExcluding(ctx, event.ID, event.Tags)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}

// dropBlank trims entries and removes blank ones, preserving order.
func dropBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

const slugSuffixLength = 6

var slugSuffixAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// uniqueSlug derives a URL-safe slug from the title, appending a short
// random suffix while the candidate collides with an existing event.
func (s *eventService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "event"
	}
	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		_, err := s.eventRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		suffix, err := randomSuffix(slugSuffixLength)
		if err != nil {
			return "", err
		}
		candidate = base + "-" + suffix
	}
	return "", fmt.Errorf("could not find a free slug for %q", base)
}

// slugify lowercases the title and collapses runs of non-alphanumerics into
// single hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func randomSuffix(length int) (string, error) {
	b := make([]rune, length)
	max := big.NewInt(int64(len(slugSuffixAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugSuffixAlphabet[n.Int64()]
	}
	return string(b), nil
}
