package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type clientRepository struct {
	store repository.DocumentStore
}

func NewClientRepository(store repository.DocumentStore) repository.ClientRepository {
	return &clientRepository{store: store}
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Client{}, doc.Clients...)
		return nil
	})
	return out, err
}

func (r *clientRepository) Get(ctx context.Context, id int) (*model.Client, error) {
	var found *model.Client
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Clients, func(c model.Client) bool { return c.ID == id }); i >= 0 {
			c := doc.Clients[i]
			found = &c
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		client.ID = NextClientID(doc.Clients)
		doc.Clients = append(doc.Clients, *client)
		return nil
	})
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Clients, func(c model.Client) bool { return c.ID == client.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Clients[i] = *client
		return nil
	})
	return found, err
}

func (r *clientRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(c model.Client) bool { return c.ID == id }
		if indexOf(doc.Clients, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Clients = without(doc.Clients, match)
		return nil
	})
	return found, err
}

// NextClientID is the id the next appended client gets.
func NextClientID(clients []model.Client) int {
	ids := make([]int, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return NextIntID(ids)
}
