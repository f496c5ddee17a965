package domain

import "github.com/dom/meucoracao/internal/validation"

type Allergy struct {
	Owned `bson:",inline"`
	Name  string `json:"nome" gorm:"not null" bson:"nome"`
	Type  string `json:"tipo" gorm:"not null" bson:"tipo"`
}

func (Allergy) TableName() string { return "allergies" }

type AllergyInput struct {
	Name string `json:"nome" validate:"required"`
	Type string `json:"tipo" validate:"required"`
}

func (in AllergyInput) Validate() error {
	return validation.Struct(in)
}

func (in AllergyInput) Build() Allergy {
	return Allergy{Name: in.Name, Type: in.Type}
}

type AllergyPatch struct {
	Name *string `json:"nome"`
	Type *string `json:"tipo"`
}

func (p AllergyPatch) Validate() error {
	var errs validation.Errors
	errs = validation.NotBlank(errs, "nome", p.Name)
	errs = validation.NotBlank(errs, "tipo", p.Type)
	return errs.Err()
}

func (p AllergyPatch) Apply(a *Allergy) {
	applyString(&a.Name, p.Name)
	applyString(&a.Type, p.Type)
}
