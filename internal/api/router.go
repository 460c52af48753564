package api

import (
	"net/http"
	"time"

	"client_portal/internal/api/handler"
	"client_portal/internal/api/middleware"
	"client_portal/internal/app/service"
	"client_portal/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	cfg *config.Config,
	rdb *redis.Client,
	cluster handler.ClusterStatus,
	authService *service.AuthService,
	appointmentService *service.AppointmentService,
	requestService *service.ServiceRequestService,
	invoiceService *service.InvoiceService,
	contactService *service.ContactService,
	adminService *service.AdminService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	authHandler := handler.NewAuthHandler(authService, cfg.AllowedDomains)
	healthHandler := handler.NewHealthHandler(cluster)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	requestHandler := handler.NewServiceRequestHandler(requestService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	contactHandler := handler.NewContactHandler(contactService)
	adminHandler := handler.NewAdminHandler(adminService, adminService)

	authenticate := middleware.Authenticator(authService)

	r.Route("/api", func(api chi.Router) {
		// Verifier only checks the cookie signature; unauthenticated
		// routes pass through it untouched.
		api.Use(middleware.Verifier)

		// Public surface
		api.Get("/auth/login", authHandler.Login)
		api.Get("/auth/callback", authHandler.Callback)
		api.Get("/auth/logout", authHandler.Logout)
		api.Get("/health/database", healthHandler.Database)
		api.With(middleware.RateLimit(rdb, cfg.ContactRateLimit, cfg.ContactRateWindow)).
			Post("/contact", contactHandler.Create)

		// Authenticated surface
		api.Group(func(priv chi.Router) {
			priv.Use(authenticate)

			priv.Get("/auth/user", authHandler.CurrentUser)
			priv.Route("/appointments", appointmentHandler.RegisterRoutes)
			priv.Route("/service-requests", requestHandler.RegisterRoutes)
			priv.Route("/invoices", invoiceHandler.RegisterRoutes)

			// Admin surface
			priv.Group(func(admin chi.Router) {
				admin.Use(middleware.AdminOnly)
				admin.Get("/health/connections", healthHandler.Connections)
				admin.Route("/admin", adminHandler.RegisterRoutes)
			})
		})
	})

	return r
}
