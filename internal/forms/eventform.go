// Package forms models the event form workflow: the scalar fields, the
// dynamically sized agenda list, validation, and assembly of the normalized
// payload submitted to the event service.
package forms

import (
	"strings"

	"eventdeck/internal/domain"
)

// EventForm holds the in-progress state of the event create/edit form.
// Agenda items are an ordered, explicitly indexed list; Tags is a single
// comma-separated string split on submit.
type EventForm struct {
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
	Tags        string
	AgendaItems []string
}

// NewEventForm returns an empty form with one blank agenda row, matching the
// initial state presented to the user.
func NewEventForm() *EventForm {
	return &EventForm{AgendaItems: []string{""}}
}

// FromEvent pre-fills a form from an existing event, for editing.
func FromEvent(e *domain.Event) *EventForm {
	agenda := make([]string, len(e.Agenda))
	copy(agenda, e.Agenda)
	if len(agenda) == 0 {
		agenda = []string{""}
	}
	return &EventForm{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Organizer:   e.Organizer,
		Tags:        strings.Join(e.Tags, ", "),
		AgendaItems: agenda,
	}
}

// AddAgendaItem appends a blank agenda row.
func (f *EventForm) AddAgendaItem() {
	f.AgendaItems = append(f.AgendaItems, "")
}

// RemoveAgendaItem removes the agenda row at index i. Out-of-range indexes
// are ignored.
func (f *EventForm) RemoveAgendaItem(i int) {
	if i < 0 || i >= len(f.AgendaItems) {
		return
	}
	f.AgendaItems = append(f.AgendaItems[:i], f.AgendaItems[i+1:]...)
}

// UpdateAgendaItem sets the agenda row at index i. Out-of-range indexes are
// ignored.
func (f *EventForm) UpdateAgendaItem(i int, value string) {
	if i < 0 || i >= len(f.AgendaItems) {
		return
	}
	f.AgendaItems[i] = value
}

// Validate returns error messages for required and format rules; nil means
// valid. Title, date, and description are mandatory; all other fields are
// optional.
func (f *EventForm) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, "event title is required")
	}
	if strings.TrimSpace(f.Date) == "" {
		errs = append(errs, "event date is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		errs = append(errs, "description is required")
	}
	mode := strings.TrimSpace(strings.ToLower(f.Mode))
	if mode != "" && mode != domain.ModeOnline && mode != domain.ModeOffline && mode != domain.ModeHybrid {
		errs = append(errs, "mode must be online, offline, or hybrid")
	}
	return errs
}

// Payload assembles the normalized event input: tags split on commas,
// trimmed, and stripped of blanks; blank agenda rows dropped.
func (f *EventForm) Payload() domain.EventInput {
	return domain.EventInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Overview:    strings.TrimSpace(f.Overview),
		Image:       strings.TrimSpace(f.Image),
		Venue:       strings.TrimSpace(f.Venue),
		Location:    strings.TrimSpace(f.Location),
		Date:        strings.TrimSpace(f.Date),
		Time:        strings.TrimSpace(f.Time),
		Mode:        strings.TrimSpace(strings.ToLower(f.Mode)),
		Audience:    strings.TrimSpace(f.Audience),
		Organizer:   strings.TrimSpace(f.Organizer),
		Tags:        SplitTags(f.Tags),
		Agenda:      filterBlank(f.AgendaItems),
	}
}

// SplitTags splits a comma-separated tag string, trimming each entry and
// dropping blanks.
func SplitTags(tags string) []string {
	parts := strings.Split(tags, ",")
	return filterBlank(parts)
}

func filterBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
