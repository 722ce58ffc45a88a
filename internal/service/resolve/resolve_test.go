package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

func TestResolver(t *testing.T) {
	doc := &model.Document{
		Clients:    []model.Client{{ID: 1, Name: "Jane"}},
		Therapists: []model.Therapist{{ID: 2, Name: "Ana"}},
		Treatments: []model.TreatmentType{{ID: "T001", Name: "Massagem"}},
		Rooms:      []model.Room{{ID: "S1", Name: "Sala 1"}},
	}
	r := New(doc)

	c, ok := r.Client(1)
	assert.True(t, ok)
	assert.Equal(t, "Jane", c.Name)

	_, ok = r.Treatment("T404")
	assert.False(t, ok)

	view := r.Appointment(model.Appointment{ClientID: 1, TherapistID: 2, TreatmentID: "T404", RoomID: "S1"}, LabelRemoved)
	assert.Equal(t, "Jane", view.ClientName)
	assert.Equal(t, "Ana", view.TherapistName)
	assert.Equal(t, LabelRemoved, view.TreatmentName)
	assert.Equal(t, "Sala 1", view.RoomName)
}

func TestResolverEmptyDocument(t *testing.T) {
	r := New(&model.Document{})
	assert.Equal(t, LabelNotFound, r.ClientName(7, LabelNotFound))
	assert.Equal(t, LabelUnavailable, r.RoomName("S9", LabelUnavailable))
}
