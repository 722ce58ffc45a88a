package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Agendado"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmado"
	AppointmentStatusCompleted AppointmentStatus = "Realizado"
	AppointmentStatusCancelled AppointmentStatus = "Cancelado"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled session. PackageID 0 means a standalone session.
type Appointment struct {
	ID          int               `json:"id"`
	ClientID    int               `json:"clienteId"`
	TherapistID int               `json:"terapeutaId"`
	TreatmentID string            `json:"tratamentoId"`
	RoomID      string            `json:"salaId"`
	Date        string            `json:"data"`
	Time        string            `json:"hora"`
	Status      AppointmentStatus `json:"status"`
	PackageID   int               `json:"pacoteId"`
}

type AppointmentRequest struct {
	ClientID    int               `json:"client_id" binding:"required,gt=0"`
	TherapistID int               `json:"therapist_id" binding:"required,gt=0"`
	TreatmentID string            `json:"treatment_id" binding:"required"`
	RoomID      string            `json:"room_id" binding:"required"`
	Date        string            `json:"date" binding:"required,isodate"`
	Time        string            `json:"time" binding:"required,clocktime"`
	Status      AppointmentStatus `json:"status" binding:"required,oneof=Agendado Confirmado Realizado Cancelado"`
	PackageID   int               `json:"package_id" binding:"gte=0"`
}

type AppointmentFilters struct {
	ClientID    int
	TherapistID int
	Status      AppointmentStatus
	Month       string
}

// AppointmentView is an appointment with its references resolved to names.
type AppointmentView struct {
	Appointment
	ClientName    string `json:"client_name"`
	TherapistName string `json:"therapist_name"`
	TreatmentName string `json:"treatment_name"`
	RoomName      string `json:"room_name"`
}
