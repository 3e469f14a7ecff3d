package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type flavourGormRepository struct {
	db *gorm.DB
}

func NewFlavourRepository(db *gorm.DB) domainrepo.FlavourRepository {
	return &flavourGormRepository{db: db}
}

func (r *flavourGormRepository) List(ctx context.Context) ([]model.Flavour, error) {
	var items []model.Flavour
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *flavourGormRepository) FindByID(ctx context.Context, id int64) (*model.Flavour, error) {
	var f model.Flavour

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &f, nil
}

func (r *flavourGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Flavour{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *flavourGormRepository) Create(ctx context.Context, flavour *model.Flavour) error {
	return r.db.WithContext(ctx).Create(flavour).Error
}

// 紐付け行を残さないようトランザクションでまとめて消す
func (r *flavourGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flavour_id = ?", id).Delete(&model.ProteinFlavour{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Flavour{}).Error
	})
}
