package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	// 404
	ErrNotFound = errors.New("not found")
	// 409 名前の重複・リンクの重複
	ErrConflict = errors.New("already exists")
)

// プロテイン詳細（カット・フレーバーと価格込み）
type ProteinDetail struct {
	ID       int64                 `json:"id"`
	Name     string                `json:"name"`
	Cuts     []model.PricedCut     `json:"cuts"`
	Flavours []model.PricedFlavour `json:"flavours"`
}

type ProteinUsecase struct {
	proteins repository.ProteinRepository
	cuts     repository.CutRepository
	flavours repository.FlavourRepository
}

func NewProteinUsecase(
	proteins repository.ProteinRepository,
	cuts repository.CutRepository,
	flavours repository.FlavourRepository,
) *ProteinUsecase {
	return &ProteinUsecase{
		proteins: proteins,
		cuts:     cuts,
		flavours: flavours,
	}
}

func (u *ProteinUsecase) List(ctx context.Context) ([]model.Protein, error) {
	items, err := u.proteins.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *ProteinUsecase) Detail(ctx context.Context, id int64) (*ProteinDetail, error) {
	if id <= 0 {
		return nil, ErrValidation
	}

	p, err := u.proteins.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}
	if p == nil {
		return nil, ErrNotFound
	}

	cuts, err := u.proteins.ListCuts(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}

	flavours, err := u.proteins.ListFlavours(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}

	return &ProteinDetail{
		ID:       p.ID,
		Name:     p.Name,
		Cuts:     cuts,
		Flavours: flavours,
	}, nil
}

func (u *ProteinUsecase) Create(ctx context.Context, name string) (*model.Protein, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return nil, ErrValidation
	}

	exists, err := u.proteins.ExistsByName(ctx, name)
	if err != nil {
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrConflict
	}

	p := &model.Protein{Name: name}
	if err := u.proteins.Create(ctx, p); err != nil {
		return nil, ErrInternal
	}

	return p, nil
}

// プロテインを削除。紐付け（カット・フレーバー）も一緒に消える。
func (u *ProteinUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrValidation
	}

	p, err := u.proteins.FindByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if p == nil {
		return ErrNotFound
	}

	if err := u.proteins.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

// カットを価格付きでプロテインに紐付ける
func (u *ProteinUsecase) AddCut(ctx context.Context, proteinID, cutID int64, price float64) error {
	if proteinID <= 0 || cutID <= 0 || price < 0 {
		return ErrValidation
	}

	p, err := u.proteins.FindByID(ctx, proteinID)
	if err != nil {
		return ErrInternal
	}
	if p == nil {
		return ErrNotFound
	}

	c, err := u.cuts.FindByID(ctx, cutID)
	if err != nil {
		return ErrInternal
	}
	if c == nil {
		return ErrNotFound
	}

	linked, err := u.proteins.HasCut(ctx, proteinID, cutID)
	if err != nil {
		return ErrInternal
	}
	if linked {
		return ErrConflict
	}

	if err := u.proteins.AddCut(ctx, proteinID, cutID, price); err != nil {
		return ErrInternal
	}
	return nil
}

// フレーバーを価格付きでプロテインに紐付ける
func (u *ProteinUsecase) AddFlavour(ctx context.Context, proteinID, flavourID int64, price float64) error {
	if proteinID <= 0 || flavourID <= 0 || price < 0 {
		return ErrValidation
	}

	p, err := u.proteins.FindByID(ctx, proteinID)
	if err != nil {
		return ErrInternal
	}
	if p == nil {
		return ErrNotFound
	}

	f, err := u.flavours.FindByID(ctx, flavourID)
	if err != nil {
		return ErrInternal
	}
	if f == nil {
		return ErrNotFound
	}

	linked, err := u.proteins.HasFlavour(ctx, proteinID, flavourID)
	if err != nil {
		return ErrInternal
	}
	if linked {
		return ErrConflict
	}

	if err := u.proteins.AddFlavour(ctx, proteinID, flavourID, price); err != nil {
		return ErrInternal
	}
	return nil
}
