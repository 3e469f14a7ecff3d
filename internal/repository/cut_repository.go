package repository

import (
	"app/internal/domain/model"
	"context"
)

type CutRepository interface {
	List(ctx context.Context) ([]model.Cut, error)
	FindByID(ctx context.Context, id int64) (*model.Cut, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, cut *model.Cut) error
}
