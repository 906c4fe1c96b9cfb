package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository[T any] struct {
	db *gorm.DB
}

func newGormRepository[T any](db *gorm.DB) *gormRepository[T] {
	return &gormRepository[T]{db: db}
}

func (r *gormRepository[T]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *gormRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *gormRepository[T]) GetForUpdate(ctx context.Context, id uint) (*T, error) {
	var v T
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *gormRepository[T]) Update(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uint) error {
	var v T
	res := r.db.WithContext(ctx).Delete(&v, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	var vs []T
	err := r.db.WithContext(ctx).Order("id").Find(&vs).Error
	return vs, err
}

func (r *gormRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var v T
	var count int64
	err := r.db.WithContext(ctx).Model(&v).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// find runs a filtered query ordered by id.
func (r *gormRepository[T]) find(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	var vs []T
	err := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&vs).Error
	return vs, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
