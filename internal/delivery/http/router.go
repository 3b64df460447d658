package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventdeck/internal/delivery/http/controllers"
	"eventdeck/internal/delivery/http/middleware"
	"eventdeck/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Event reads are public; event mutations require a valid bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /api/register", authController.Register)
	mux.HandleFunc("POST /api/login", authController.Login)

	// Events
	mux.HandleFunc("GET /api/events", eventController.List)
	mux.HandleFunc("GET /api/events/{slug}", eventController.Get)
	mux.HandleFunc("GET /api/events/{slug}/similar", eventController.Similar)
	mux.HandleFunc("POST /api/events", requireAuth(eventController.Create))
	mux.HandleFunc("PATCH /api/events/{id}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /api/events/{id}", requireAuth(eventController.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
