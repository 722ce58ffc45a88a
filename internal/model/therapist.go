package model

type Therapist struct {
	ID        int    `json:"id"`
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
	Email     string `json:"email"`
	Password  string `json:"senha"`
}

// TherapistView is what the API returns; the password never leaves the store.
type TherapistView struct {
	ID        int    `json:"id"`
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
	Email     string `json:"email"`
}

func (t Therapist) View() TherapistView {
	return TherapistView{ID: t.ID, Name: t.Name, Specialty: t.Specialty, Email: t.Email}
}

type TherapistRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Email     string `json:"email" binding:"required,email"`
}
