package forms

import (
	"testing"

	"eventdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventForm_AgendaOperations(t *testing.T) {
	f := NewEventForm()
	require.Equal(t, []string{""}, f.AgendaItems)

	f.UpdateAgendaItem(0, "Keynote")
	f.AddAgendaItem()
	f.UpdateAgendaItem(1, "Lunch")
	f.AddAgendaItem()
	f.UpdateAgendaItem(2, "Closing")
	assert.Equal(t, []string{"Keynote", "Lunch", "Closing"}, f.AgendaItems)

	f.RemoveAgendaItem(1)
	assert.Equal(t, []string{"Keynote", "Closing"}, f.AgendaItems)

	// Out-of-range operations are no-ops.
	f.RemoveAgendaItem(7)
	f.RemoveAgendaItem(-1)
	f.UpdateAgendaItem(9, "ignored")
	assert.Equal(t, []string{"Keynote", "Closing"}, f.AgendaItems)
}

func TestEventForm_Validate(t *testing.T) {
	tests := []struct {
		name     string
		form     EventForm
		wantErrs []string
	}{
		{
			name: "valid",
			form: EventForm{Title: "Cloud Next", Date: "2026-03-01", Description: "desc"},
		},
		{
			name:     "missing everything required",
			form:     EventForm{Overview: "only optional fields"},
			wantErrs: []string{"event title is required", "event date is required", "description is required"},
		},
		{
			name:     "bad mode",
			form:     EventForm{Title: "t", Date: "d", Description: "x", Mode: "virtual"},
			wantErrs: []string{"mode must be online, offline, or hybrid"},
		},
		{
			name: "mode is case-insensitive",
			form: EventForm{Title: "t", Date: "d", Description: "x", Mode: "Hybrid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErrs, tt.form.Validate())
		})
	}
}

func TestEventForm_Payload(t *testing.T) {
	f := EventForm{
		Title:       "  Cloud Next 2026 ",
		Description: "desc",
		Date:        "2026-03-01",
		Mode:        "Online",
		Tags:        " cloud , devops ,, ai ",
		AgendaItems: []string{"Keynote", "  ", "", "Lunch "},
	}
	got := f.Payload()
	assert.Equal(t, "Cloud Next 2026", got.Title)
	assert.Equal(t, "online", got.Mode)
	assert.Equal(t, []string{"cloud", "devops", "ai"}, got.Tags)
	assert.Equal(t, []string{"Keynote", "Lunch"}, got.Agenda)
}

func TestFromEvent_RoundTrip(t *testing.T) {
	e := &domain.Event{
		Title:       "Cloud Next 2026",
		Description: "desc",
		Date:        "2026-03-01",
		Tags:        []string{"cloud", "devops"},
		Agenda:      []string{"Keynote"},
	}
	f := FromEvent(e)
	assert.Equal(t, "cloud, devops", f.Tags)

	got := f.Payload()
	assert.Equal(t, e.Tags, got.Tags)
	assert.Equal(t, e.Agenda, got.Agenda)
}

func TestFromEvent_EmptyAgendaGetsBlankRow(t *testing.T) {
	f := FromEvent(&domain.Event{Title: "t"})
	assert.Equal(t, []string{""}, f.AgendaItems)
	assert.Empty(t, f.Payload().Agenda)
}
