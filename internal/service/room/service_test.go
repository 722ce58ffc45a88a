package room

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

func TestRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewStore(t, `{"salasAmbientes":[{"id":"S1","nome":"Sala 1","capacidade":1}]}`)
	svc := NewService(document.NewRoomRepository(store))

	created, err := svc.Save(ctx, model.Create(model.EntityRoom), model.RoomRequest{Name: "Sala 2", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, "S2", created.ID)

	_, err = svc.Save(ctx, model.Edit(model.EntityRoom, "S2"), model.RoomRequest{Name: "Sala Zen", Capacity: 3})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "S2")
	require.NoError(t, err)
	assert.Equal(t, "Sala Zen", got.Name)
	assert.Equal(t, 3, got.Capacity)

	require.NoError(t, svc.Delete(ctx, "S9"))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRoomCapacity(t *testing.T) {
	store, _ := testutil.NewStore(t, testutil.EmptyDocument)
	svc := NewService(document.NewRoomRepository(store))

	_, err := svc.Save(context.Background(), model.Create(model.EntityRoom), model.RoomRequest{Name: "Tiny", Capacity: 0})
	assert.True(t, errors.HasCode(err, errors.ErrBadRequest))
}
