package repository

import (
	"app/internal/domain/model"
	"context"
)

type FlavourRepository interface {
	List(ctx context.Context) ([]model.Flavour, error)
	FindByID(ctx context.Context, id int64) (*model.Flavour, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, flavour *model.Flavour) error
	// 本体とprotein_flavoursの紐付けを1トランザクションで削除
	Delete(ctx context.Context, id int64) error
}
