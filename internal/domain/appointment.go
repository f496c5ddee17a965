package domain

import "github.com/dom/meucoracao/internal/validation"

// Appointment is an entry in the user's medical agenda.
type Appointment struct {
	Owned    `bson:",inline"`
	Title    string `json:"titulo" gorm:"not null" bson:"titulo"`
	Doctor   string `json:"medico,omitempty" bson:"medico,omitempty"`
	Date     string `json:"data" gorm:"not null" bson:"data"`
	Time     string `json:"horario" gorm:"not null" bson:"horario"`
	Location string `json:"local,omitempty" bson:"local,omitempty"`
	Notes    string `json:"observacoes,omitempty" bson:"observacoes,omitempty"`
}

func (Appointment) TableName() string { return "appointments" }

type AppointmentInput struct {
	Title    string `json:"titulo" validate:"required"`
	Doctor   string `json:"medico"`
	Date     string `json:"data" validate:"required"`
	Time     string `json:"horario" validate:"required"`
	Location string `json:"local"`
	Notes    string `json:"observacoes"`
}

func (in AppointmentInput) Validate() error {
	return validation.Struct(in)
}

func (in AppointmentInput) Build() Appointment {
	return Appointment{
		Title:    in.Title,
		Doctor:   in.Doctor,
		Date:     in.Date,
		Time:     in.Time,
		Location: in.Location,
		Notes:    in.Notes,
	}
}

type AppointmentPatch struct {
	Title    *string `json:"titulo"`
	Doctor   *string `json:"medico"`
	Date     *string `json:"data"`
	Time     *string `json:"horario"`
	Location *string `json:"local"`
	Notes    *string `json:"observacoes"`
}

func (p AppointmentPatch) Validate() error {
	var errs validation.Errors
	errs = validation.NotBlank(errs, "titulo", p.Title)
	errs = validation.NotBlank(errs, "data", p.Date)
	errs = validation.NotBlank(errs, "horario", p.Time)
	return errs.Err()
}

func (p AppointmentPatch) Apply(a *Appointment) {
	applyString(&a.Title, p.Title)
	applyString(&a.Doctor, p.Doctor)
	applyString(&a.Date, p.Date)
	applyString(&a.Time, p.Time)
	applyString(&a.Location, p.Location)
	applyString(&a.Notes, p.Notes)
}
