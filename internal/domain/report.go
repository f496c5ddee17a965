package domain

import "github.com/dom/meucoracao/internal/validation"

// Report is a medical report (laudo) such as an exam result.
type Report struct {
	Owned `bson:",inline"`
	Title string `json:"titulo" gorm:"not null" bson:"titulo"`
	Date  string `json:"data" gorm:"not null" bson:"data"`
	Notes string `json:"observacoes,omitempty" bson:"observacoes,omitempty"`
}

func (Report) TableName() string { return "reports" }

type ReportInput struct {
	Title string `json:"titulo" validate:"required"`
	Date  string `json:"data" validate:"required"`
	Notes string `json:"observacoes"`
}

func (in ReportInput) Validate() error {
	return validation.Struct(in)
}

func (in ReportInput) Build() Report {
	return Report{Title: in.Title, Date: in.Date, Notes: in.Notes}
}

type ReportPatch struct {
	Title *string `json:"titulo"`
	Date  *string `json:"data"`
	Notes *string `json:"observacoes"`
}

func (p ReportPatch) Validate() error {
	var errs validation.Errors
	errs = validation.NotBlank(errs, "titulo", p.Title)
	errs = validation.NotBlank(errs, "data", p.Date)
	return errs.Err()
}

func (p ReportPatch) Apply(r *Report) {
	applyString(&r.Title, p.Title)
	applyString(&r.Date, p.Date)
	applyString(&r.Notes, p.Notes)
}
