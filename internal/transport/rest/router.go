package rest

import (
	"log/slog"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/metrics"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/go-chi/chi"
)

// Routes collects what RegisterAllRoutes mounts. Nil handlers are skipped.
type Routes struct {
	DB          Pinger
	Auth        *auth.Handler
	User        *user.Handler
	Employee    *employee.Handler
	Metrics     *metrics.Metrics
	MetricsPath string
}

func RegisterAllRoutes(router *chi.Mux, routes Routes, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if routes.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(routes.Metrics))
	}

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	if routes.DB != nil {
		healthHandler := NewHealthHandler(routes.DB)
		router.Get("/health", healthHandler.Health)
		router.Get("/ping", healthHandler.Ping)
	}

	if routes.Metrics != nil {
		path := routes.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, routes.Metrics.Handler())
	}

	if routes.Auth == nil {
		return
	}

	router.Post("/token/", routes.Auth.ObtainToken)
	router.Post("/token/refresh/", routes.Auth.RefreshToken)

	// Protected routes that require authentication
	router.Group(func(pr chi.Router) {
		pr.Use(routes.Auth.AuthMiddleware)

		if routes.User != nil {
			pr.Get("/users/me/", routes.User.GetCurrentUser)
		}

		if routes.Employee != nil {
			h := routes.Employee
			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.ListEmployees)
				er.Post("/create/", h.CreateEmployee)
				er.Get("/filter/", h.FilterEmployees)
				er.Get("/{id}/", h.GetEmployee)
				er.Put("/{id}/update/", h.UpdateEmployee)
				er.Patch("/{id}/update/", h.PatchEmployee)
				er.Delete("/{id}/delete/", h.DeleteEmployee)
			})
			pr.Get("/api/employees/filter/", h.FilterEmployees)
		}
	})
}
