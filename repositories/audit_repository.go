package repositories

import (
	"context"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

// Audit repositories expose create and read only. Rows are never updated
// or deleted by application code.

type GormFolderAuditRepository struct {
	db *gorm.DB
}

func NewGormFolderAuditRepository(db *gorm.DB) *GormFolderAuditRepository {
	return &GormFolderAuditRepository{db: db}
}

func (r *GormFolderAuditRepository) Create(_ context.Context, tx *gorm.DB, audit *models.FolderAudit) error {
	return useTx(r.db, tx).Create(audit).Error
}

func (r *GormFolderAuditRepository) List(_ context.Context, tx *gorm.DB, in AuditListInput) ([]models.FolderAudit, error) {
	db := useTx(r.db, tx).Model(&models.FolderAudit{}).Order("timestamp DESC")
	if in.Limit > 0 {
		db = db.Offset(in.Offset).Limit(in.Limit)
	}
	var audits []models.FolderAudit
	err := db.Find(&audits).Error
	return audits, err
}

func (r *GormFolderAuditRepository) Count(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.FolderAudit{}).Count(&count).Error
	return count, err
}

type GormFileAuditRepository struct {
	db *gorm.DB
}

func NewGormFileAuditRepository(db *gorm.DB) *GormFileAuditRepository {
	return &GormFileAuditRepository{db: db}
}

func (r *GormFileAuditRepository) Create(_ context.Context, tx *gorm.DB, audit *models.FileAudit) error {
	return useTx(r.db, tx).Create(audit).Error
}

func (r *GormFileAuditRepository) List(_ context.Context, tx *gorm.DB, in AuditListInput) ([]models.FileAudit, error) {
	db := useTx(r.db, tx).Model(&models.FileAudit{}).Order("timestamp DESC")
	if in.Limit > 0 {
		db = db.Offset(in.Offset).Limit(in.Limit)
	}
	var audits []models.FileAudit
	err := db.Find(&audits).Error
	return audits, err
}

func (r *GormFileAuditRepository) Count(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.FileAudit{}).Count(&count).Error
	return count, err
}
