package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/dashboard"
	"github.com/brightsmile/clinic-backend/internal/observability/metrics"
	"github.com/brightsmile/clinic-backend/internal/payments"
	"github.com/brightsmile/clinic-backend/internal/promotion"
	"github.com/brightsmile/clinic-backend/internal/records"
	"github.com/brightsmile/clinic-backend/internal/users"
)

type RouterConfig struct {
	Users     *users.Service
	Catalog   *catalog.CatalogService
	Promos    *promotion.PromoService
	Booking   *booking.Service
	Records   *records.Service
	Payments  *payments.Service
	Dashboard *dashboard.Service

	Metrics *metrics.APIMetrics

	PgPool *pgxpool.Pool
	Redis  *redis.Client

	// AuthDisabled skips token checks entirely; refused outside dev by
	// config validation.
	AuthDisabled bool
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Metrics))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	// Public: account creation, login, and the browsable catalog.
	r.Post("/auth/register", registerHandler(cfg.Users))
	r.Post("/auth/login", loginHandler(cfg.Users))

	r.Get("/services", listServicesHandler(cfg.Catalog))
	r.Get("/services/{id}", getServiceHandler(cfg.Catalog))
	r.Get("/doctors", listDoctorsHandler(cfg.Catalog))
	r.Get("/doctors/{id}", getDoctorHandler(cfg.Catalog))
	r.Get("/doctors/{id}/availability", availabilityHandler(cfg.Booking))
	r.Get("/promotions", listPromotionsHandler(cfg.Promos))
	r.Get("/promotions/{id}", getPromotionHandler(cfg.Promos))

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Users, cfg.AuthDisabled))

		r.Get("/auth/me", meHandler(cfg.Users))

		r.Post("/appointments", createAppointmentHandler(cfg.Booking, cfg.Metrics))
		r.Get("/appointments", listAppointmentsHandler(cfg.Booking))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Booking))
		r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Booking))

		r.Post("/appointments/{id}/payment-proofs", submitProofHandler(cfg.Payments))
		r.Get("/payment-proofs/{id}", getProofHandler(cfg.Payments))

		r.Get("/records", listRecordsHandler(cfg.Records))
		r.Get("/prescriptions", listPrescriptionsHandler(cfg.Records))
		r.Get("/prescriptions/{id}", getPrescriptionHandler(cfg.Records))
		r.Get("/prescriptions/{id}/pdf", downloadPrescriptionHandler(cfg.Records))

		// Back office: doctors and staff.
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(users.RoleDoctor, users.RoleStaff, users.RoleAdmin))

			r.Post("/prescriptions", createPrescriptionHandler(cfg.Records))
			r.Patch("/records/{id}", updateRecordNotesHandler(cfg.Records))
			r.Get("/payment-proofs", listProofsHandler(cfg.Payments))
			r.Post("/payment-proofs/{id}/approve", approveProofHandler(cfg.Payments))
			r.Post("/payment-proofs/{id}/reject", rejectProofHandler(cfg.Payments))
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(users.RoleAdmin))

			r.Post("/appointments/{id}/complete", completeAppointmentHandler(cfg.Booking))
			r.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Booking))

			r.Post("/services", createServiceHandler(cfg.Catalog))
			r.Put("/services/{id}", updateServiceHandler(cfg.Catalog))
			r.Delete("/services/{id}", deleteServiceHandler(cfg.Catalog))

			r.Post("/doctors", createDoctorHandler(cfg.Catalog))
			r.Put("/doctors/{id}", updateDoctorHandler(cfg.Catalog))
			r.Delete("/doctors/{id}", deleteDoctorHandler(cfg.Catalog))

			r.Post("/promotions", createPromotionHandler(cfg.Promos))
			r.Put("/promotions/{id}", updatePromotionHandler(cfg.Promos))
			r.Delete("/promotions/{id}", deletePromotionHandler(cfg.Promos))

			r.Get("/users", listUsersHandler(cfg.Users))
			r.Get("/users/{id}", getUserHandler(cfg.Users))
			r.Post("/users", createUserHandler(cfg.Users))
			r.Put("/users/{id}", updateUserHandler(cfg.Users))
			r.Delete("/users/{id}", deleteUserHandler(cfg.Users))

			r.Get("/dashboard/summary", dashboardSummaryHandler(cfg.Dashboard))
			r.Get("/dashboard/doctor-load", dashboardDoctorLoadHandler(cfg.Dashboard))
		})
	})

	return r
}
