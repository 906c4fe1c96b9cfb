package services

import (
	"errors"
	"testing"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

func TestCatalogUpdateKeepsID(t *testing.T) {
	f := newFixture(t)
	clients := NewCatalogService[models.Client](f.store.Clients)

	updated, err := clients.Update(f.ctx, f.client.ID, func(c *models.Client) error {
		c.ID = 999
		c.Phone = "555-0100"
		return nil
	})
	must(t, err)
	if updated.ID != f.client.ID || updated.Phone != "555-0100" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.CreatedAt.Equal(f.client.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", f.client.CreatedAt, updated.CreatedAt)
	}

	if _, err := clients.Update(f.ctx, 404, func(*models.Client) error { return nil }); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing client: got %v", err)
	}

	must(t, clients.Delete(f.ctx, f.client.ID))
	all, err := clients.List(f.ctx)
	must(t, err)
	if len(all) != 0 {
		t.Errorf("clients after delete: %+v", all)
	}
}
