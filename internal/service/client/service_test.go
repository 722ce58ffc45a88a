package client

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
  "adminUser": {"username": "admin", "password": "admin123"},
  "terapeutas": [{"id": 1, "nome": "Ana", "email": "ana@x.com", "senha": "123456"}],
  "clientes": [{"id": 1, "nome": "Jane", "telefone": "111", "email": "jane@x.com", "anamnese": {}}],
  "tiposTratamento": [{"id": "T001", "nome": "Massage", "preco": 100}],
  "agendamentos": [
    {"id": 1, "clienteId": 1, "terapeutaId": 1, "tratamentoId": "T001", "salaId": "S1", "data": "2024-03-01", "hora": "10:00", "status": "Realizado"},
    {"id": 2, "clienteId": 1, "terapeutaId": 7, "tratamentoId": "T404", "salaId": "S1", "data": "2024-03-10", "hora": "09:00", "status": "Agendado", "pacoteId": 3},
    {"id": 3, "clienteId": 2, "terapeutaId": 1, "tratamentoId": "T001", "salaId": "S1", "data": "2024-03-11", "hora": "09:00", "status": "Agendado"}
  ]
}`

func newService(t *testing.T) (*Service, *document.Store) {
	store, _ := testutil.NewStore(t, clinic)
	return NewService(document.NewClientRepository(store), store, testutil.Clock()), store
}

func TestCreateStampsIntake(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	c, err := svc.Save(ctx, model.Create(model.EntityClient), model.ClientRequest{
		Name:   " Bob ",
		Email:  "bob@x.com",
		Intake: model.IntakeRequest{ChiefComplaint: "neck", Allergies: "latex"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.ID)
	assert.Equal(t, "Bob", c.Name)
	assert.Equal(t, "2024-03-15", c.Intake.FilledOn)
	assert.Equal(t, "latex", c.Intake.Allergies)
}

func TestSaveRequiresName(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Save(context.Background(), model.Create(model.EntityClient), model.ClientRequest{Name: " "})
	assert.True(t, errors.HasCode(err, errors.ErrBadRequest))
}

func TestUpdateAndMissingTarget(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	c, err := svc.Save(ctx, model.EditInt(model.EntityClient, 1), model.ClientRequest{Name: "Jane Roe"})
	require.NoError(t, err)
	require.NotNil(t, c)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", got.Name)

	c, err = svc.Save(ctx, model.EditInt(model.EntityClient, 42), model.ClientRequest{Name: "Nobody"})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeleteKeepsAppointments(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	require.NoError(t, svc.Delete(ctx, 1))

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Clients)
	assert.Len(t, doc.Appointments, 3)
}

func TestDetailHistory(t *testing.T) {
	svc, _ := newService(t)

	detail, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, detail.History, 2)

	newest := detail.History[0]
	assert.Equal(t, 2, newest.AppointmentID)
	assert.Equal(t, "Removed", newest.Treatment)
	assert.Equal(t, "Removed", newest.Therapist)
	assert.Equal(t, 3, newest.PackageID)

	assert.Equal(t, "Massage", detail.History[1].Treatment)
	assert.Equal(t, "Ana", detail.History[1].Therapist)
}

func TestDetailMissingClient(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Detail(context.Background(), 9)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
}
