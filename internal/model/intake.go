package model

import "time"

// IntakeSubmission is the flat payload of the public intake form.
type IntakeSubmission struct {
	// ID is stamped when the form is parked; Clear compares against it.
	ID                string `json:"submissionId,omitempty"`
	Name              string `json:"nome"`
	Email             string `json:"email"`
	Phone             string `json:"telefone"`
	ChiefComplaint    string `json:"queixaPrincipal"`
	ChronicConditions string `json:"condicoesCronicas"`
	Pregnancy         string `json:"gravidez"`
	Surgeries         string `json:"cirurgias"`
	Medications       string `json:"medicamentosUso"`
	Allergies         string `json:"alergias"`
	Notes             string `json:"observacoesAnamnese"`
}

// Intake builds the client intake block from the submission.
func (s IntakeSubmission) Intake(filledOn string) Intake {
	return Intake{
		ChiefComplaint:    s.ChiefComplaint,
		ChronicConditions: s.ChronicConditions,
		Pregnancy:         s.Pregnancy,
		Surgeries:         s.Surgeries,
		Medications:       s.Medications,
		Allergies:         s.Allergies,
		Notes:             s.Notes,
		FilledOn:          filledOn,
	}
}

type ReconcileResult struct {
	ClientID int    `json:"client_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Created  bool   `json:"created"`
}

// IntakeEvent is published when a public form is stored as pending.
type IntakeEvent struct {
	Type        string    `json:"type"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submitted_at"`
}

const IntakeSubmittedEvent = "intake.submitted"
