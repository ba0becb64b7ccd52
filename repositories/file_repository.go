package repositories

import (
	"context"
	"fmt"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) GetByID(_ context.Context, tx *gorm.DB, fileID uint) (models.StoredFile, error) {
	var file models.StoredFile
	err := useTx(r.db, tx).First(&file, fileID).Error
	return file, err
}

func (r *GormFileRepository) ListByFolder(_ context.Context, tx *gorm.DB, in ListFilesInput) ([]models.StoredFile, error) {
	db := useTx(r.db, tx).Model(&models.StoredFile{}).Where("folder_id = ?", in.FolderID)
	if in.Search != "" {
		db = db.Where("title LIKE ?", "%"+in.Search+"%")
	}

	sortBy := in.SortBy
	if sortBy != "title" && sortBy != "upload_date" && sortBy != "file_size" {
		sortBy = "upload_date"
	}
	order := in.Order
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	db = db.Order(fmt.Sprintf("%s %s", sortBy, order))

	if in.Limit > 0 {
		db = db.Offset(in.Offset).Limit(in.Limit)
	}

	var files []models.StoredFile
	err := db.Find(&files).Error
	return files, err
}

func (r *GormFileRepository) CountByFolder(_ context.Context, tx *gorm.DB, folderID uint, search string) (int64, error) {
	db := useTx(r.db, tx).Model(&models.StoredFile{}).Where("folder_id = ?", folderID)
	if search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.StoredFile) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) UpdateByID(_ context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) (int64, error) {
	result := useTx(r.db, tx).Model(&models.StoredFile{}).Where("id = ?", fileID).Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *GormFileRepository) DeleteByID(_ context.Context, tx *gorm.DB, fileID uint) (int64, error) {
	result := useTx(r.db, tx).Delete(&models.StoredFile{}, fileID)
	return result.RowsAffected, result.Error
}

func (r *GormFileRepository) ListByFolderID(_ context.Context, tx *gorm.DB, folderID uint) ([]models.StoredFile, error) {
	var files []models.StoredFile
	err := useTx(r.db, tx).Where("folder_id = ?", folderID).Find(&files).Error
	return files, err
}

func (r *GormFileRepository) DeleteByFolderID(_ context.Context, tx *gorm.DB, folderID uint) error {
	return useTx(r.db, tx).Where("folder_id = ?", folderID).Delete(&models.StoredFile{}).Error
}
