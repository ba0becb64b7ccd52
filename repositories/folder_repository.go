package repositories

import (
	"context"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

// Sort keys accepted by folder listing. Anything else falls back to
// name ascending.
const (
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
	SortDateAsc  = "date_asc"
	SortDateDesc = "date_desc"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID uint, preloadTags bool) (models.Folder, error) {
	db := useTx(r.db, tx)
	if preloadTags {
		db = db.Preload("Tags")
	}
	var folder models.Folder
	err := db.First(&folder, folderID).Error
	return folder, err
}

func (r *GormFolderRepository) List(_ context.Context, tx *gorm.DB, in ListFoldersInput) ([]models.Folder, error) {
	db := useTx(r.db, tx).Model(&models.Folder{}).Preload("Tags")

	// Hidden folders are filtered out before the search term is applied.
	if !in.IncludeHidden {
		db = db.Where("is_hidden = ?", false)
	}
	if in.Search != "" {
		db = db.Where("name LIKE ?", "%"+in.Search+"%")
	}
	if in.TagID > 0 {
		db = db.Joins("JOIN folder_tags ON folder_tags.folder_id = folders.id AND folder_tags.tag_id = ?", in.TagID)
	}

	switch in.Sort {
	case SortNameDesc:
		db = db.Order("name DESC")
	case SortDateAsc:
		db = db.Order("created_at ASC")
	case SortDateDesc:
		db = db.Order("created_at DESC")
	default:
		db = db.Order("name ASC")
	}

	var folders []models.Folder
	err := db.Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) UpdateByID(_ context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) (int64, error) {
	result := useTx(r.db, tx).Model(&models.Folder{}).Where("id = ?", folderID).Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *GormFolderRepository) DeleteByID(_ context.Context, tx *gorm.DB, folderID uint) (int64, error) {
	result := useTx(r.db, tx).Delete(&models.Folder{}, folderID)
	return result.RowsAffected, result.Error
}

func (r *GormFolderRepository) ReplaceTags(_ context.Context, tx *gorm.DB, folder *models.Folder, tags []models.Tag) error {
	return useTx(r.db, tx).Model(folder).Association("Tags").Replace(tags)
}

func (r *GormFolderRepository) ClearTags(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Model(folder).Association("Tags").Clear()
}
