// Package router wires the clinic REST handlers and middleware onto a chi mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/clinic-server/internal/api/rest/handler"
	"github.com/dtroode/clinic-server/internal/api/rest/middleware"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/metrics"
	"github.com/dtroode/clinic-server/internal/model"
)

// Services groups everything the routes delegate to.
type Services struct {
	Auth         handler.AuthService
	Registration handler.RegistrationService
	Directory    handler.DirectoryService
	Records      handler.RecordsService
	Images       handler.ImageService
	Tokens       middleware.TokenParser
	Guard        middleware.RoleGuard
	Database     handler.Pinger
}

// Options tunes request limits.
type Options struct {
	MaxBodyBytes  int64
	RatePerMinute int
	RateBurst     int
}

// Router builds the HTTP handler tree.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	services Services,
	options Options,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register mounts every route and returns the root handler.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	requestMetrics := middleware.NewMetrics(r.metrics)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(requestMetrics.Handle)
	mux.Use(chimiddleware.Recoverer)

	mux.Mount("/api/auth", r.authRoutes())
	mux.Mount("/api/user", r.userRoutes())
	mux.Mount("/api/update", r.updateRoutes())

	imageHandler := handler.NewImage(r.services.Images, r.logger)
	mux.Get("/images/{name}", imageHandler.Get)

	healthHandler := handler.NewHealth(r.services.Database, r.logger)
	mux.Get("/healthz", healthHandler.Check)
	mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())

	return mux
}

func (r *Router) authRoutes() chi.Router {
	authHandler := handler.NewAuth(r.services.Auth, r.services.Registration, r.options.MaxBodyBytes, r.logger)
	limiter := middleware.NewRateLimit(r.options.RatePerMinute, r.options.RateBurst, r.metrics, r.logger)

	routes := chi.NewRouter()
	routes.Post("/admin/register", authHandler.RegisterAdmin)
	routes.Post("/doctor/register", authHandler.RegisterDoctor)
	routes.Post("/patient/register", authHandler.RegisterPatient)
	routes.Post("/reset-password", authHandler.ResetPassword)
	routes.Group(func(limited chi.Router) {
		limited.Use(limiter.Handle)
		limited.Post("/login", authHandler.Login)
		limited.Post("/request-password-reset", authHandler.RequestPasswordReset)
	})
	return routes
}

func (r *Router) userRoutes() chi.Router {
	userHandler := handler.NewUser(r.services.Directory, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.services.Guard, r.contextManager, r.logger)

	routes := chi.NewRouter()
	routes.Use(r.authenticate())
	routes.Get("/details", userHandler.Details)
	routes.With(authorize.Require(model.RoleAdmin)).Get("/doctors", userHandler.ListDoctors)
	routes.With(authorize.Require(model.RoleAdmin)).Get("/patients", userHandler.ListPatients)
	routes.With(authorize.Require(model.RoleDoctor, model.RoleAdmin)).
		Get("/patients/doctor/{doctorID}", userHandler.ListPatientsByDoctor)
	return routes
}

func (r *Router) updateRoutes() chi.Router {
	updateHandler := handler.NewUpdate(r.services.Records, r.contextManager, r.options.MaxBodyBytes, r.logger)
	authorize := middleware.NewAuthorize(r.services.Guard, r.contextManager, r.logger)

	routes := chi.NewRouter()
	routes.Use(r.authenticate())
	routes.Group(func(doctor chi.Router) {
		doctor.Use(authorize.Require(model.RoleDoctor))
		doctor.Put("/patient/doctor/{patientID}", updateHandler.UpdatePatientForDoctor)
		doctor.Delete("/patient/doctor/{patientID}", updateHandler.DeletePatientForDoctor)
	})
	routes.Group(func(admin chi.Router) {
		admin.Use(authorize.Require(model.RoleAdmin))
		admin.Put("/doctor/{id}", updateHandler.UpdateDoctor)
		admin.Delete("/doctor/{id}", updateHandler.DeleteDoctor)
		admin.Put("/patient/{id}", updateHandler.UpdatePatient)
		admin.Delete("/patient/{id}", updateHandler.DeletePatient)
	})
	return routes
}

func (r *Router) authenticate() func(http.Handler) http.Handler {
	return middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger).Handle
}
