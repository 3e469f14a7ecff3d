package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type cutGormRepository struct {
	db *gorm.DB
}

func NewCutRepository(db *gorm.DB) domainrepo.CutRepository {
	return &cutGormRepository{db: db}
}

func (r *cutGormRepository) List(ctx context.Context) ([]model.Cut, error) {
	var items []model.Cut
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cutGormRepository) FindByID(ctx context.Context, id int64) (*model.Cut, error) {
	var c model.Cut

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &c, nil
}

func (r *cutGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Cut{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *cutGormRepository) Create(ctx context.Context, cut *model.Cut) error {
	return r.db.WithContext(ctx).Create(cut).Error
}
