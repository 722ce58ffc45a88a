package model

// Storage keys of the clinic state and the pending public intake form.
const (
	DocumentKey          = "clinicData"
	PendingSubmissionKey = "PublicAnamneseSubmission"
)

const (
	DefaultCompanyName       = "Clínica Administrativa"
	DefaultHeaderColor       = "#004c9e"
	DefaultTherapistPassword = "123456"
	MaxLogoBytes             = 500000
	MinPasswordLength        = 6
)

// Document is the whole clinic state. It is persisted as a single JSON value
// and every mutation rewrites it entirely.
type Document struct {
	AdminUser    AdminUser       `json:"adminUser"`
	Therapists   []Therapist     `json:"terapeutas"`
	Clients      []Client        `json:"clientes"`
	Appointments []Appointment   `json:"agendamentos"`
	Treatments   []TreatmentType `json:"tiposTratamento"`
	Rooms        []Room          `json:"salasAmbientes"`
	Expenses     []Expense       `json:"despesas"`
	Packages     []Package       `json:"pacotes"`
	Company      *CompanyConfig  `json:"configuracaoEmpresa,omitempty"`
}

// Normalize replaces missing collections with empty ones.
func (d *Document) Normalize() {
	if d.Therapists == nil {
		d.Therapists = []Therapist{}
	}
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Appointments == nil {
		d.Appointments = []Appointment{}
	}
	if d.Treatments == nil {
		d.Treatments = []TreatmentType{}
	}
	if d.Rooms == nil {
		d.Rooms = []Room{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Packages == nil {
		d.Packages = []Package{}
	}
}

type AdminUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CompanyConfig struct {
	Name        string `json:"nome"`
	TaxID       string `json:"cnpj"`
	LogoBase64  string `json:"logoBase64"`
	HeaderColor string `json:"headerColor"`
}
