package api

import (
	"net/http"

	"github.com/dom/meucoracao/internal/api/handlers"
	"github.com/dom/meucoracao/internal/api/middleware"
	"github.com/dom/meucoracao/internal/config"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", handlers.Root)
	r.Get("/favicon.ico", handlers.Favicon)
	r.Get("/health", handlers.Health)

	errs := handlers.NewErrorWriter(log, cfg.SeparateForbidden)
	requireAuth := middleware.Auth(services.Tokens, log)

	authHandler := handlers.NewAuthHandler(services.Auth, errs)
	agenda := handlers.NewResourceHandler[domain.AppointmentInput, domain.AppointmentPatch]("agenda", services.Appointments, errs)
	alergias := handlers.NewResourceHandler[domain.AllergyInput, domain.AllergyPatch]("alergias", services.Allergies, errs)
	remedios := handlers.NewResourceHandler[domain.MedicationInput, domain.MedicationPatch]("remedios", services.Medications, errs)
	laudos := handlers.NewResourceHandler[domain.ReportInput, domain.ReportPatch]("laudos", services.Reports, errs)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.With(requireAuth).Get("/me", authHandler.Me)

		if services.Google != nil {
			google := handlers.NewGoogleAuthHandler(services.Auth, services.Google, cfg.GoogleSuccessRedirect, errs)
			r.Get("/google", google.Start)
			r.Get("/google/callback", google.Callback)
		}
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/agenda", agenda.Routes)
		r.Route("/alergias", alergias.Routes)
		r.Route("/remedios", remedios.Routes)
		r.Route("/laudos", laudos.Routes)
	})

	return r
}
