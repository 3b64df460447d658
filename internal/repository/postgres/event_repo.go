package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventdeck/internal/domain"
)

const eventColumns = `id, title, slug, description, overview, image, venue, location, date, time, mode, audience, organizer, tags, agenda, booked, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// scanEvent scans one event row. Tags and agenda are text[] columns.
func scanEvent(row interface {
	Scan(dest ...any) error
}) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image,
		&e.Venue, &e.Location, &e.Date, &e.Time, &e.Mode, &e.Audience,
		&e.Organizer, pq.Array(&e.Tags), pq.Array(&e.Agenda), &e.Booked,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, date, time, mode, audience, organizer, tags, agenda, booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue,
		e.Location, e.Date, e.Time, e.Mode, e.Audience, e.Organizer,
		pq.Array(e.Tags), pq.Array(e.Agenda), e.Booked, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		ORDER BY created_at DESC
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE slug = $1
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1

	addString := func(column string, value *string) {
		if value != nil {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
			args = append(args, *value)
			n++
		}
	}
	addString("title", update.Title)
	addString("description", update.Description)
	addString("overview", update.Overview)
	addString("image", update.Image)
	addString("venue", update.Venue)
	addString("location", update.Location)
	addString("date", update.Date)
	addString("time", update.Time)
	addString("mode", update.Mode)
	addString("audience", update.Audience)
	addString("organizer", update.Organizer)
	if update.Tags != nil {
		setClauses = append(setClauses, fmt.Sprintf("tags = $%d", n))
		args = append(args, pq.Array(update.Tags))
		n++
	}
	if update.Agenda != nil {
		setClauses = append(setClauses, fmt.Sprintf("agenda = $%d", n))
		args = append(args, pq.Array(update.Agenda))
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByAnyTagExcluding(ctx context.Context, excludeID string, tags []string) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id <> $1 AND tags && $2
		ORDER BY created_at DESC
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, excludeID, pq.Array(tags))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
