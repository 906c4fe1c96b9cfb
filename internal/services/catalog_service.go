package services

import (
	"context"

	"transport_manager/internal/repository"
)

// CatalogService is plain CRUD over a master record table (clients,
// suppliers, products, vehicles, equipment, employees).
type CatalogService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, v *T) error
	// Update loads the record, lets apply change it and saves it back
	// under the same id.
	Update(ctx context.Context, id uint, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type keyed[T any] interface {
	*T
	SetID(id uint)
}

type catalogService[T any, PT keyed[T]] struct {
	repo repository.Repository[T]
}

func NewCatalogService[T any, PT keyed[T]](repo repository.Repository[T]) CatalogService[T] {
	return &catalogService[T, PT]{repo: repo}
}

func (s *catalogService[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

func (s *catalogService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService[T, PT]) Create(ctx context.Context, v *T) error {
	PT(v).SetID(0)
	return s.repo.Create(ctx, v)
}

func (s *catalogService[T, PT]) Update(ctx context.Context, id uint, apply func(*T) error) (*T, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(v); err != nil {
		return nil, err
	}
	PT(v).SetID(id)
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *catalogService[T, PT]) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
