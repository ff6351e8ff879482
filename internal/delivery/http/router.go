package http

import (
	"net/http"

	"denticare-server/internal/delivery/http/handler"
	"denticare-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	bookingHandler      *handler.BookingHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	dentistHandler      *handler.DentistHandler
	scheduleHandler     *handler.DentistScheduleHandler
	patientHandler      *handler.PatientHandler
	treatmentHandler    *handler.TreatmentHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	dentistHandler *handler.DentistHandler,
	scheduleHandler *handler.DentistScheduleHandler,
	patientHandler *handler.PatientHandler,
	treatmentHandler *handler.TreatmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		bookingHandler:      bookingHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		dentistHandler:      dentistHandler,
		scheduleHandler:     scheduleHandler,
		patientHandler:      patientHandler,
		treatmentHandler:    treatmentHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public booking flow
	api.HandleFunc("/captcha", r.bookingHandler.GetCaptcha).Methods(http.MethodGet)
	api.HandleFunc("/bookings/validate", r.bookingHandler.ValidateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", r.bookingHandler.CreateGuestBooking).Methods(http.MethodPost)
	api.HandleFunc("/dentists", r.dentistHandler.GetAllDentists).Methods(http.MethodGet)
	api.HandleFunc("/dentists/{id}", r.dentistHandler.GetDentist).Methods(http.MethodGet)
	api.HandleFunc("/dentists/{id}/slots", r.availabilityHandler.GetWeeklySlots).Methods(http.MethodGet)
	api.HandleFunc("/treatments", r.treatmentHandler.GetAllTreatments).Methods(http.MethodGet)
	api.HandleFunc("/treatments/{id}", r.treatmentHandler.GetTreatment).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments/mine", r.appointmentHandler.ListMine).Methods(http.MethodGet)

	// Cancel is shared: the usecase applies the per-role policy.
	cancel := api.PathPrefix("").Subrouter()
	cancel.Use(r.authMiddleware.Authenticate)
	cancel.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	cancel.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)

	// Staff routes (admin, receptionist, dentist)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/follow-up", r.bookingHandler.CreateFollowUpBooking).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.Reschedule).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/attend", r.appointmentHandler.MarkAttended).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/absent", r.appointmentHandler.MarkAbsented).Methods(http.MethodPost)
	staff.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/schedules", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	staff.HandleFunc("/schedules/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	staff.HandleFunc("/dentists/{id}/schedules", r.scheduleHandler.GetSchedulesByDentist).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)
	admin.HandleFunc("/dentists/{id}", r.dentistHandler.UpdateDentist).Methods(http.MethodPut)
	admin.HandleFunc("/schedules", r.scheduleHandler.GetAllSchedules).Methods(http.MethodGet)
	admin.HandleFunc("/schedules/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)
	admin.HandleFunc("/treatments", r.treatmentHandler.CreateTreatment).Methods(http.MethodPost)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.UpdateTreatment).Methods(http.MethodPut)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.DeleteTreatment).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
