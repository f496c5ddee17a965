package domain

import "github.com/dom/meucoracao/internal/validation"

type Medication struct {
	Owned  `bson:",inline"`
	Name   string `json:"nome" gorm:"not null" bson:"nome"`
	Dosage string `json:"dosagem" gorm:"not null" bson:"dosagem"`
}

func (Medication) TableName() string { return "medications" }

type MedicationInput struct {
	Name   string `json:"nome" validate:"required"`
	Dosage string `json:"dosagem" validate:"required"`
}

func (in MedicationInput) Validate() error {
	return validation.Struct(in)
}

func (in MedicationInput) Build() Medication {
	return Medication{Name: in.Name, Dosage: in.Dosage}
}

type MedicationPatch struct {
	Name   *string `json:"nome"`
	Dosage *string `json:"dosagem"`
}

func (p MedicationPatch) Validate() error {
	var errs validation.Errors
	errs = validation.NotBlank(errs, "nome", p.Name)
	errs = validation.NotBlank(errs, "dosagem", p.Dosage)
	return errs.Err()
}

func (p MedicationPatch) Apply(m *Medication) {
	applyString(&m.Name, p.Name)
	applyString(&m.Dosage, p.Dosage)
}
