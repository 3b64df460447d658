package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidField is returned when a supplied field value fails validation.
	ErrInvalidField = errors.New("invalid field")
)

// Event modes. Mode may also be empty when not specified.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event represents an event record shown on the dashboard. Tags and Agenda
// are ordered sequences; Slug is the URL-safe unique identifier.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	Agenda      []string  `json:"agenda"`
	Booked      int       `json:"booked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventInput is the normalized payload for creating an event. Tags and
// Agenda are already split, trimmed, and stripped of blank entries.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Tags        []string
	Agenda      []string
}

// EventUpdate carries a partial update. Nil fields keep their prior values.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Organizer   *string
	Tags        []string
	Agenda      []string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// ListByAnyTagExcluding returns events other than excludeID that share at
	// least one of the given tags.
	ListByAnyTagExcluding(ctx context.Context, excludeID string, tags []string) ([]*Event, error)
}

// EventService defines the business logic for the event dashboard.
type EventService interface {
	Create(ctx context.Context, input EventInput) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	FindSimilar(ctx context.Context, slug string) ([]*Event, error)
}
