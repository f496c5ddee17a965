package service

import (
	"github.com/dom/meucoracao/internal/config"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
)

type (
	AppointmentService = ResourceService[domain.Appointment, *domain.Appointment]
	AllergyService     = ResourceService[domain.Allergy, *domain.Allergy]
	MedicationService  = ResourceService[domain.Medication, *domain.Medication]
	ReportService      = ResourceService[domain.Report, *domain.Report]
)

type Services struct {
	Auth         *AuthService
	Tokens       *TokenService
	Appointments *AppointmentService
	Allergies    *AllergyService
	Medications  *MedicationService
	Reports      *ReportService
	// Google is nil when Google sign-in is not configured.
	Google GoogleProvider
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	tokens := NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	services := &Services{
		Auth:         NewAuthService(repos.User, tokens, cfg.BcryptCost),
		Tokens:       tokens,
		Appointments: NewResourceService[domain.Appointment](repos.Appointments),
		Allergies:    NewResourceService[domain.Allergy](repos.Allergies),
		Medications:  NewResourceService[domain.Medication](repos.Medications),
		Reports:      NewResourceService[domain.Report](repos.Reports),
	}
	if cfg.GoogleEnabled() {
		services.Google = NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	}
	return services
}
