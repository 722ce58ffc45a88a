package model

// TreatmentType is a billable service. IDs follow the T001 scheme.
type TreatmentType struct {
	ID    string  `json:"id"`
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
}

// Room is a treatment room. IDs follow the S1 scheme.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Capacity int    `json:"capacidade"`
}

type Expense struct {
	ID          int     `json:"id"`
	Category    string  `json:"tipo"`
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
	Date        string  `json:"data"`
}

type TreatmentRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

type RoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity"`
}

type ExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date" binding:"required,isodate"`
}

type CompanyRequest struct {
	Name        string `form:"name"`
	TaxID       string `form:"tax_id"`
	HeaderColor string `form:"header_color"`
	Logo        []byte `form:"-"`
}
