package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type proteinGormRepository struct {
	db *gorm.DB
}

func NewProteinRepository(db *gorm.DB) domainrepo.ProteinRepository {
	return &proteinGormRepository{db: db}
}

func (r *proteinGormRepository) List(ctx context.Context) ([]model.Protein, error) {
	var items []model.Protein
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *proteinGormRepository) FindByID(ctx context.Context, id int64) (*model.Protein, error) {
	var p model.Protein

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

func (r *proteinGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Protein{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *proteinGormRepository) Create(ctx context.Context, protein *model.Protein) error {
	return r.db.WithContext(ctx).Create(protein).Error
}

// 紐付け行を残さないようトランザクションでまとめて消す
func (r *proteinGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("protein_id = ?", id).Delete(&model.ProteinCut{}).Error; err != nil {
			return err
		}
		if err := tx.Where("protein_id = ?", id).Delete(&model.ProteinFlavour{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Protein{}).Error
	})
}

// プロテインに紐づくカット一覧（価格付き）
func (r *proteinGormRepository) ListCuts(ctx context.Context, proteinID int64) ([]model.PricedCut, error) {
	var rows []model.PricedCut

	err := r.db.WithContext(ctx).
		Table("cuts").
		Select("cuts.id, cuts.name, protein_cuts.price").
		Joins("JOIN protein_cuts ON protein_cuts.cut_id = cuts.id").
		Where("protein_cuts.protein_id = ?", proteinID).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

// プロテインに紐づくフレーバー一覧（価格付き）
func (r *proteinGormRepository) ListFlavours(ctx context.Context, proteinID int64) ([]model.PricedFlavour, error) {
	var rows []model.PricedFlavour

	err := r.db.WithContext(ctx).
		Table("flavours").
		Select("flavours.id, flavours.name, protein_flavours.price").
		Joins("JOIN protein_flavours ON protein_flavours.flavour_id = flavours.id").
		Where("protein_flavours.protein_id = ?", proteinID).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *proteinGormRepository) HasCut(ctx context.Context, proteinID, cutID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProteinCut{}).
		Where("protein_id = ? AND cut_id = ?", proteinID, cutID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *proteinGormRepository) HasFlavour(ctx context.Context, proteinID, flavourID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProteinFlavour{}).
		Where("protein_id = ? AND flavour_id = ?", proteinID, flavourID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *proteinGormRepository) AddCut(ctx context.Context, proteinID, cutID int64, price float64) error {
	link := model.ProteinCut{
		ProteinID: proteinID,
		CutID:     cutID,
		Price:     price,
	}
	return r.db.WithContext(ctx).Create(&link).Error
}

func (r *proteinGormRepository) AddFlavour(ctx context.Context, proteinID, flavourID int64, price float64) error {
	link := model.ProteinFlavour{
		ProteinID: proteinID,
		FlavourID: flavourID,
		Price:     price,
	}
	return r.db.WithContext(ctx).Create(&link).Error
}
