package usecase

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 注文番号の生成（uuid）はinterfaceで受けてテスト可能にする
type OrderNumberGenerator interface {
	NewOrderNumber() string
}

type OrderUsecase struct {
	orders repository.OrderRepository
	numGen OrderNumberGenerator
}

func NewOrderUsecase(orders repository.OrderRepository, numGen OrderNumberGenerator) *OrderUsecase {
	return &OrderUsecase{
		orders: orders,
		numGen: numGen,
	}
}

func (u *OrderUsecase) Create(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}

	order := &model.Order{
		OrderNumber: u.numGen.NewOrderNumber(),
		UserID:      userID,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, ErrInternal
	}

	summary := order.Summary()
	return &summary, nil
}

func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]model.OrderSummary, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	summaries := make([]model.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].Summary())
	}
	return summaries, nil
}
