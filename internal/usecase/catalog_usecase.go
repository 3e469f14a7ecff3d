package usecase

import (
	"context"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
)

// カット・フレーバーの一覧と登録。どちらも薄いCRUD。
type CatalogUsecase struct {
	cuts     repository.CutRepository
	flavours repository.FlavourRepository
}

func NewCatalogUsecase(cuts repository.CutRepository, flavours repository.FlavourRepository) *CatalogUsecase {
	return &CatalogUsecase{
		cuts:     cuts,
		flavours: flavours,
	}
}

func (u *CatalogUsecase) ListCuts(ctx context.Context) ([]model.Cut, error) {
	items, err := u.cuts.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *CatalogUsecase) CreateCut(ctx context.Context, name string) (*model.Cut, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return nil, ErrValidation
	}

	exists, err := u.cuts.ExistsByName(ctx, name)
	if err != nil {
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrConflict
	}

	c := &model.Cut{Name: name}
	if err := u.cuts.Create(ctx, c); err != nil {
		return nil, ErrInternal
	}
	return c, nil
}

func (u *CatalogUsecase) ListFlavours(ctx context.Context) ([]model.Flavour, error) {
	items, err := u.flavours.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *CatalogUsecase) CreateFlavour(ctx context.Context, name string) (*model.Flavour, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return nil, ErrValidation
	}

	exists, err := u.flavours.ExistsByName(ctx, name)
	if err != nil {
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrConflict
	}

	f := &model.Flavour{Name: name}
	if err := u.flavours.Create(ctx, f); err != nil {
		return nil, ErrInternal
	}
	return f, nil
}

// フレーバーを削除。プロテインへの紐付けも一緒に消える。
func (u *CatalogUsecase) DeleteFlavour(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrValidation
	}

	f, err := u.flavours.FindByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if f == nil {
		return ErrNotFound
	}

	if err := u.flavours.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}
