package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/testutil"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

const clinic = `{
  "clientes": [{"id": 1, "nome": "Jane", "anamnese": {}}, {"id": 2, "nome": "Bob", "anamnese": {}}],
  "terapeutas": [{"id": 1, "nome": "Ana"}],
  "tiposTratamento": [{"id": "T001", "nome": "Massage", "preco": 100}],
  "salasAmbientes": [{"id": "S1", "nome": "Sala 1", "capacidade": 1}],
  "agendamentos": [
    {"id": 1, "clienteId": 1, "terapeutaId": 1, "tratamentoId": "T001", "salaId": "S1", "data": "2024-03-05", "hora": "10:00", "status": "Realizado"},
    {"id": 2, "clienteId": 2, "terapeutaId": 1, "tratamentoId": "T404", "salaId": "S1", "data": "2024-03-05", "hora": "15:00", "status": "Agendado"},
    {"id": 3, "clienteId": 1, "terapeutaId": 1, "tratamentoId": "T001", "salaId": "S9", "data": "2024-04-01", "hora": "08:00", "status": "Cancelado"}
  ]
}`

func newService(t *testing.T) *Service {
	store, _ := testutil.NewStore(t, clinic)
	return NewService(document.NewAppointmentRepository(store), store)
}

func validRequest() model.AppointmentRequest {
	return model.AppointmentRequest{
		ClientID: 1, TherapistID: 1, TreatmentID: "T001", RoomID: "S1",
		Date: "2024-03-20", Time: "09:30", Status: model.AppointmentStatusScheduled,
	}
}

func TestListSortedLatestFirst(t *testing.T) {
	list, err := newService(t).List(context.Background(), model.AppointmentFilters{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, 3, list[0].ID)
	assert.Equal(t, 2, list[1].ID)
	assert.Equal(t, 1, list[2].ID)

	assert.Equal(t, "Not found", list[0].RoomName)
	assert.Equal(t, "Not found", list[1].TreatmentName)
	assert.Equal(t, "Bob", list[1].ClientName)
}

func TestListFilters(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	list, err := svc.List(ctx, model.AppointmentFilters{ClientID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(ctx, model.AppointmentFilters{Month: "2024-03", Status: model.AppointmentStatusScheduled})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID)
}

func TestSave(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Save(ctx, model.Create(model.EntityAppointment), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 4, a.ID)

	req := validRequest()
	req.Status = model.AppointmentStatusCompleted
	a, err = svc.Save(ctx, model.EditInt(model.EntityAppointment, 4), req)
	require.NoError(t, err)
	require.NotNil(t, a)

	view, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, view.Status)
	assert.Equal(t, "Jane", view.ClientName)

	a, err = svc.Save(ctx, model.EditInt(model.EntityAppointment, 40), req)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestSaveValidation(t *testing.T) {
	svc := newService(t)

	mutations := []func(*model.AppointmentRequest){
		func(r *model.AppointmentRequest) { r.ClientID = 0 },
		func(r *model.AppointmentRequest) { r.Date = "20/03/2024" },
		func(r *model.AppointmentRequest) { r.Time = "9h" },
		func(r *model.AppointmentRequest) { r.Status = "Done" },
		func(r *model.AppointmentRequest) { r.RoomID = "" },
	}
	for i, mutate := range mutations {
		req := validRequest()
		mutate(&req)
		_, err := svc.Save(context.Background(), model.Create(model.EntityAppointment), req)
		assert.True(t, errors.HasCode(err, errors.ErrBadRequest), "case %d", i)
	}

	req := validRequest()
	req.Time = "9h"
	_, err := svc.Save(context.Background(), model.Create(model.EntityAppointment), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time must be a time in HH:MM form")
}

func TestGetMissingAndDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 1))
	require.NoError(t, svc.Delete(ctx, 1))

	_, err := svc.Get(ctx, 1)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
}
