package routes

import (
	"net/http"

	"github.com/carelinkhq/patient-portal/internal/api/handlers"
	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	profileHandler      *handlers.ProfileHandler
	bookingHandler      *handlers.BookingHandler
	appointmentsHandler *handlers.AppointmentsHandler
	catalogHandler      *handlers.CatalogHandler

	guard   func(http.Handler) http.Handler
	metrics *observability.Metrics
}

// NewRouter creates a new router. guard is the session middleware applied to
// every route that requires a signed-in patient.
func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	bookingHandler *handlers.BookingHandler,
	appointmentsHandler *handlers.AppointmentsHandler,
	catalogHandler *handlers.CatalogHandler,
	guard func(http.Handler) http.Handler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		bookingHandler:      bookingHandler,
		appointmentsHandler: appointmentsHandler,
		catalogHandler:      catalogHandler,
		guard:               guard,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public auth endpoints
	r.mux.HandleFunc("POST /api/auth/signin", r.authHandler.SignIn)
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.SignUp)
	r.mux.HandleFunc("DELETE /api/session", r.authHandler.SignOut)

	// Session endpoint
	r.protected("GET /api/session", r.authHandler.Session)

	// Profile endpoints
	r.protected("GET /api/profile", r.profileHandler.Get)
	r.protected("PUT /api/profile", r.profileHandler.Save)

	// Clinic service catalog
	r.protected("GET /api/services", r.catalogHandler.List)

	// Booking draft endpoints
	r.protected("GET /api/booking/draft", r.bookingHandler.StartDraft)
	r.protected("DELETE /api/booking/draft", r.bookingHandler.Discard)
	r.protected("POST /api/booking/department", r.bookingHandler.SelectDepartment)
	r.protected("POST /api/booking/doctor", r.bookingHandler.SelectDoctor)
	r.protected("POST /api/booking/date", r.bookingHandler.SelectDate)
	r.protected("POST /api/booking/time", r.bookingHandler.SelectTime)
	r.protected("POST /api/booking/comments", r.bookingHandler.SetComments)
	r.protected("POST /api/booking/attachment", r.bookingHandler.Attach)
	r.protected("POST /api/booking/submit", r.bookingHandler.Submit)

	// Appointment list endpoints
	r.protected("GET /api/appointments", r.appointmentsHandler.List)
	r.protected("POST /api/appointments/join", r.appointmentsHandler.Join)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so preflights never hit the session guard
	handler = middleware.CORSMiddleware(handler)

	return handler
}

// protected registers a route behind the session guard.
func (r *Router) protected(pattern string, handlerFunc http.HandlerFunc) {
	r.mux.Handle(pattern, r.guard(handlerFunc))
}
