package domain

import (
	"encoding/json"
	"testing"

	"github.com/dom/meucoracao/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOwned_BelongsTo(t *testing.T) {
	owner := uuid.New()
	m := Medication{Owned: Owned{ID: uuid.New(), OwnerID: owner}}

	assert.True(t, m.Ownership().BelongsTo(owner))
	assert.False(t, m.Ownership().BelongsTo(uuid.New()))
}

func TestInputs_Validate(t *testing.T) {
	tests := []struct {
		name       string
		input      interface{ Validate() error }
		wantFields []string
	}{
		{
			name:  "complete appointment",
			input: AppointmentInput{Title: "Cardiologista", Date: "2025-03-10", Time: "14:30"},
		},
		{
			name:       "appointment missing required",
			input:      AppointmentInput{Doctor: "Dr. Silva"},
			wantFields: []string{"titulo", "data", "horario"},
		},
		{
			name:       "allergy missing type",
			input:      AllergyInput{Name: "Dipirona"},
			wantFields: []string{"tipo"},
		},
		{
			name:  "medication",
			input: MedicationInput{Name: "Losartana", Dosage: "50mg"},
		},
		{
			name:       "medication empty",
			input:      MedicationInput{},
			wantFields: []string{"nome", "dosagem"},
		},
		{
			name:       "report missing date",
			input:      ReportInput{Title: "Ecocardiograma"},
			wantFields: []string{"data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			fields, ok := validation.Fields(err)
			require.True(t, ok)
			var got []string
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestPatches(t *testing.T) {
	t.Run("appointment merges provided fields only", func(t *testing.T) {
		a := AppointmentInput{
			Title: "Consulta", Doctor: "Dr. Silva", Date: "2025-03-10",
			Time: "14:30", Location: "Clínica", Notes: "jejum",
		}.Build()

		p := AppointmentPatch{Time: strPtr("15:00"), Notes: strPtr("")}
		require.NoError(t, p.Validate())
		p.Apply(&a)

		assert.Equal(t, "Consulta", a.Title)
		assert.Equal(t, "Dr. Silva", a.Doctor)
		assert.Equal(t, "15:00", a.Time)
		assert.Equal(t, "Clínica", a.Location)
		assert.Equal(t, "", a.Notes)
	})

	t.Run("blank required fields are rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			patch interface{ Validate() error }
			field string
		}{
			{"appointment title", AppointmentPatch{Title: strPtr(" ")}, "titulo"},
			{"allergy name", AllergyPatch{Name: strPtr("")}, "nome"},
			{"medication dosage", MedicationPatch{Dosage: strPtr("")}, "dosagem"},
			{"report date", ReportPatch{Date: strPtr("")}, "data"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				fields, ok := validation.Fields(tt.patch.Validate())
				require.True(t, ok)
				require.Len(t, fields, 1)
				assert.Equal(t, tt.field, fields[0].Field)
			})
		}
	})

	t.Run("allergy, medication and report", func(t *testing.T) {
		al := AllergyInput{Name: "Dipirona", Type: "medicamento"}.Build()
		AllergyPatch{Type: strPtr("alimentar")}.Apply(&al)
		assert.Equal(t, Allergy{Name: "Dipirona", Type: "alimentar"}, al)

		m := MedicationInput{Name: "Losartana", Dosage: "50mg"}.Build()
		MedicationPatch{Dosage: strPtr("100mg")}.Apply(&m)
		assert.Equal(t, Medication{Name: "Losartana", Dosage: "100mg"}, m)

		r := ReportInput{Title: "ECG", Date: "2025-01-02"}.Build()
		ReportPatch{Notes: strPtr("ritmo sinusal")}.Apply(&r)
		assert.Equal(t, Report{Title: "ECG", Date: "2025-01-02", Notes: "ritmo sinusal"}, r)
	})
}

func TestMedication_JSON(t *testing.T) {
	owner := uuid.New()
	m := Medication{Owned: Owned{ID: uuid.New(), OwnerID: owner}, Name: "Losartana", Dosage: "50mg"}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, owner.String(), body["ownerId"])
	assert.Equal(t, "Losartana", body["nome"])
	assert.Equal(t, "50mg", body["dosagem"])
	assert.Contains(t, body, "id")
	assert.Contains(t, body, "createdAt")
}

func TestUser_Public(t *testing.T) {
	u := &User{ID: uuid.New(), Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"email":"ana@x.com"`)
}
