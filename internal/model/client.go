package model

type Client struct {
	ID     int    `json:"id"`
	Name   string `json:"nome"`
	Phone  string `json:"telefone"`
	Email  string `json:"email"`
	Intake Intake `json:"anamnese"`
}

// Intake is the health questionnaire attached to a client.
type Intake struct {
	ChiefComplaint    string `json:"queixaPrincipal"`
	MedicalHistory    string `json:"historicoMedico"`
	ChronicConditions string `json:"condicoesCronicas"`
	Pregnancy         string `json:"gravidez"`
	Surgeries         string `json:"cirurgias"`
	Medications       string `json:"medicamentosUso"`
	Allergies         string `json:"alergias"`
	Notes             string `json:"observacoesAnamnese"`
	FilledOn          string `json:"dataPreenchimento"`
}

type ClientRequest struct {
	Name   string        `json:"name" binding:"required"`
	Phone  string        `json:"phone"`
	Email  string        `json:"email" binding:"omitempty,email"`
	Intake IntakeRequest `json:"intake"`
}

type IntakeRequest struct {
	ChiefComplaint    string `json:"chief_complaint"`
	MedicalHistory    string `json:"medical_history"`
	ChronicConditions string `json:"chronic_conditions"`
	Pregnancy         string `json:"pregnancy"`
	Surgeries         string `json:"surgeries"`
	Medications       string `json:"medications"`
	Allergies         string `json:"allergies"`
	Notes             string `json:"notes"`
}

// ToIntake builds the stored block, stamped with the given date.
func (r IntakeRequest) ToIntake(filledOn string) Intake {
	return Intake{
		ChiefComplaint:    r.ChiefComplaint,
		MedicalHistory:    r.MedicalHistory,
		ChronicConditions: r.ChronicConditions,
		Pregnancy:         r.Pregnancy,
		Surgeries:         r.Surgeries,
		Medications:       r.Medications,
		Allergies:         r.Allergies,
		Notes:             r.Notes,
		FilledOn:          filledOn,
	}
}

// HistoryEntry is one line of a client's treatment history.
type HistoryEntry struct {
	AppointmentID int               `json:"appointment_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Treatment     string            `json:"treatment"`
	Therapist     string            `json:"therapist"`
	Status        AppointmentStatus `json:"status"`
	PackageID     int               `json:"package_id,omitempty"`
}

type ClientDetail struct {
	Client  Client         `json:"client"`
	History []HistoryEntry `json:"history"`
}
