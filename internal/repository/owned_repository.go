package repository

import (
	"context"

	"gorm.io/gorm"
)

// Owned provides persistence for entities that belong to a single user.
// Every read and write is filtered by both the entity id and the owner id, so
// a row owned by someone else is indistinguishable from a missing one.
type Owned[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	DeleteIfOwned(ctx context.Context, id, ownerID uint) (bool, error)
}

type ownedRepository[T any] struct {
	db *gorm.DB
}

// NewOwned builds the shared owner-scoped repository for an entity type.
func NewOwned[T any](db *gorm.DB) Owned[T] {
	return &ownedRepository[T]{db: db}
}

func (r *ownedRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *ownedRepository[T]) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *ownedRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// DeleteIfOwned removes the row only when the compound (id, owner) filter hits.
// The boolean result distinguishes "deleted" from "no such row for this owner".
func (r *ownedRepository[T]) DeleteIfOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
