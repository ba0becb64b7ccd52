package repositories

import (
	"context"
	"errors"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

type GormLikeRepository struct {
	db *gorm.DB
}

func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

func (r *GormLikeRepository) Exists(_ context.Context, tx *gorm.DB, userID uint, folderID uint) (bool, error) {
	var like models.FolderLike
	err := useTx(r.db, tx).Where("user_id = ? AND folder_id = ?", userID, folderID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *GormLikeRepository) Create(_ context.Context, tx *gorm.DB, like *models.FolderLike) error {
	return useTx(r.db, tx).Create(like).Error
}

func (r *GormLikeRepository) Delete(_ context.Context, tx *gorm.DB, userID uint, folderID uint) (int64, error) {
	result := useTx(r.db, tx).Where("user_id = ? AND folder_id = ?", userID, folderID).Delete(&models.FolderLike{})
	return result.RowsAffected, result.Error
}

func (r *GormLikeRepository) ListFolderIDsByUser(_ context.Context, tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := useTx(r.db, tx).Model(&models.FolderLike{}).Where("user_id = ?", userID).Pluck("folder_id", &ids).Error
	return ids, err
}

func (r *GormLikeRepository) CountByFolder(_ context.Context, tx *gorm.DB, folderID uint) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.FolderLike{}).Where("folder_id = ?", folderID).Count(&count).Error
	return count, err
}

func (r *GormLikeRepository) DeleteByFolder(_ context.Context, tx *gorm.DB, folderID uint) error {
	return useTx(r.db, tx).Where("folder_id = ?", folderID).Delete(&models.FolderLike{}).Error
}
