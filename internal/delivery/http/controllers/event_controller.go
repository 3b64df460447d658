package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventdeck/internal/delivery/http/helpers"
	"eventdeck/internal/domain"
	"eventdeck/internal/forms"
)

// CreateEventRequest is the request body for POST /api/events. It mirrors the
// event form: tags arrive as a single comma-separated string, agenda as an
// ordered list of items. Blank agenda rows are dropped on submit.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Organizer   string   `json:"organizer"`
	Tags        string   `json:"tags"`
	Agenda      []string `json:"agenda"`
}

func (c CreateEventRequest) form() *forms.EventForm {
	return &forms.EventForm{
		Title:       c.Title,
		Description: c.Description,
		Overview:    c.Overview,
		Image:       c.Image,
		Venue:       c.Venue,
		Location:    c.Location,
		Date:        c.Date,
		Time:        c.Time,
		Mode:        c.Mode,
		Audience:    c.Audience,
		Organizer:   c.Organizer,
		Tags:        c.Tags,
		AgendaItems: c.Agenda,
	}
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	return c.form().Validate()
}

// UpdateEventRequest is the request body for PATCH /api/events/{id}.
// Absent fields keep their stored values.
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Organizer   *string  `json:"organizer"`
	Tags        *string  `json:"tags"`
	Agenda      []string `json:"agenda"`
}

func (u UpdateEventRequest) update() domain.EventUpdate {
	upd := domain.EventUpdate{
		Title:       u.Title,
		Description: u.Description,
		Overview:    u.Overview,
		Image:       u.Image,
		Venue:       u.Venue,
		Location:    u.Location,
		Date:        u.Date,
		Time:        u.Time,
		Mode:        u.Mode,
		Audience:    u.Audience,
		Organizer:   u.Organizer,
		Agenda:      u.Agenda,
	}
	if u.Tags != nil {
		tags := forms.SplitTags(*u.Tags)
		if tags == nil {
			tags = []string{}
		}
		upd.Tags = tags
	}
	return upd
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidField):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		// Store failures are logged with detail; the client gets a generic message.
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not process request")
	}
}

// List godoc
// @Summary List events
// @Description List all events, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Similar godoc
// @Summary List events similar to one event
// @Description List events sharing at least one tag with the named event, excluding the event itself. Unknown slugs and untagged events yield an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the similar events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug}/similar [get]
func (c *EventController) Similar(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.FindSimilar(r.Context(), r.PathValue("slug"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Create godoc
// @Summary Create an event
// @Description Create an event from the event form payload. Tags are comma-separated; blank tags and agenda items are dropped. A unique slug is derived from the title.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event form data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Security BearerAuth
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), req.form().Payload())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Description Apply a partial update to an event. Absent fields keep their stored values; required fields may not be blanked.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Security BearerAuth
// @Router /api/events/{id} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), r.PathValue("id"), req.update())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the deleted event id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Security BearerAuth
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": id})
}
