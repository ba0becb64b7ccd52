package repositories

import (
	"context"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

type GormTagRepository struct {
	db *gorm.DB
}

func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) List(_ context.Context, tx *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := useTx(r.db, tx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *GormTagRepository) GetByID(_ context.Context, tx *gorm.DB, tagID uint) (models.Tag, error) {
	var tag models.Tag
	err := useTx(r.db, tx).First(&tag, tagID).Error
	return tag, err
}

func (r *GormTagRepository) GetByIDs(_ context.Context, tx *gorm.DB, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := useTx(r.db, tx).Where("id IN ?", tagIDs).Find(&tags).Error
	return tags, err
}

func (r *GormTagRepository) CountByName(_ context.Context, tx *gorm.DB, name string, excludeID uint) (int64, error) {
	db := useTx(r.db, tx).Model(&models.Tag{}).Where("name = ?", name)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormTagRepository) Create(_ context.Context, tx *gorm.DB, tag *models.Tag) error {
	return useTx(r.db, tx).Create(tag).Error
}

func (r *GormTagRepository) DeleteByID(_ context.Context, tx *gorm.DB, tagID uint) (int64, error) {
	result := useTx(r.db, tx).Select("Folders").Delete(&models.Tag{ID: tagID})
	return result.RowsAffected, result.Error
}
