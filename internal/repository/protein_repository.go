package repository

import (
	"app/internal/domain/model"
	"context"
)

// プロテイン本体とカット/フレーバーの紐付け
type ProteinRepository interface {
	List(ctx context.Context) ([]model.Protein, error)
	FindByID(ctx context.Context, id int64) (*model.Protein, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, protein *model.Protein) error
	// 本体とprotein_cuts/protein_flavoursの紐付けを1トランザクションで削除
	Delete(ctx context.Context, id int64) error

	ListCuts(ctx context.Context, proteinID int64) ([]model.PricedCut, error)
	ListFlavours(ctx context.Context, proteinID int64) ([]model.PricedFlavour, error)
	HasCut(ctx context.Context, proteinID, cutID int64) (bool, error)
	HasFlavour(ctx context.Context, proteinID, flavourID int64) (bool, error)
	AddCut(ctx context.Context, proteinID, cutID int64, price float64) error
	AddFlavour(ctx context.Context, proteinID, flavourID int64, price float64) error
}
