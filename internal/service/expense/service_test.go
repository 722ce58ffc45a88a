package expense

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

const clinic = `{"despesas":[
  {"id": 1, "tipo": "Rent", "descricao": "March", "valor": 1000, "data": "2024-03-01"},
  {"id": 4, "tipo": "Supplies", "descricao": "Oil", "valor": 50, "data": "2024-02-20"}
]}`

func TestExpenseSave(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewStore(t, clinic)
	svc := NewService(document.NewExpenseRepository(store))

	e, err := svc.Save(ctx, model.Create(model.EntityExpense), model.ExpenseRequest{
		Category: "Power", Amount: 120.5, Date: "2024-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, e.ID)

	march, err := svc.List(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, "2024-03-10", march[0].Date)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExpenseValidation(t *testing.T) {
	store, _ := testutil.NewStore(t, clinic)
	svc := NewService(document.NewExpenseRepository(store))

	cases := []model.ExpenseRequest{
		{Category: "Rent", Amount: 0, Date: "2024-03-01"},
		{Category: "Rent", Amount: 10, Date: "2024-13-01"},
		{Category: "", Amount: 10, Date: "2024-03-01"},
	}
	for _, req := range cases {
		_, err := svc.Save(context.Background(), model.Create(model.EntityExpense), req)
		assert.True(t, errors.HasCode(err, errors.ErrBadRequest), "%+v", req)
	}
}

func TestExpenseUpdateMissing(t *testing.T) {
	store, _ := testutil.NewStore(t, clinic)
	svc := NewService(document.NewExpenseRepository(store))

	e, err := svc.Save(context.Background(), model.EditInt(model.EntityExpense, 99), model.ExpenseRequest{
		Category: "Rent", Amount: 1, Date: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Nil(t, e)
}
