package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
}
