package repositories

import (
	"context"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
}

type ListFoldersInput struct {
	Search        string
	Sort          string
	TagID         uint
	IncludeHidden bool
}

type FolderRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint, preloadTags bool) (models.Folder, error)
	List(ctx context.Context, tx *gorm.DB, in ListFoldersInput) ([]models.Folder, error)
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	UpdateByID(ctx context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, folderID uint) (int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, folder *models.Folder, tags []models.Tag) error
	ClearTags(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
}

type ListFilesInput struct {
	FolderID uint
	Search   string
	SortBy   string
	Order    string
	Offset   int
	Limit    int
}

type FileRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, fileID uint) (models.StoredFile, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, in ListFilesInput) ([]models.StoredFile, error)
	CountByFolder(ctx context.Context, tx *gorm.DB, folderID uint, search string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, file *models.StoredFile) error
	UpdateByID(ctx context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, fileID uint) (int64, error)
	ListByFolderID(ctx context.Context, tx *gorm.DB, folderID uint) ([]models.StoredFile, error)
	DeleteByFolderID(ctx context.Context, tx *gorm.DB, folderID uint) error
}

type LikeRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, userID uint, folderID uint) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, like *models.FolderLike) error
	Delete(ctx context.Context, tx *gorm.DB, userID uint, folderID uint) (int64, error)
	ListFolderIDsByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error)
	CountByFolder(ctx context.Context, tx *gorm.DB, folderID uint) (int64, error)
	DeleteByFolder(ctx context.Context, tx *gorm.DB, folderID uint) error
}

type TagRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]models.Tag, error)
	GetByID(ctx context.Context, tx *gorm.DB, tagID uint) (models.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uint) ([]models.Tag, error)
	CountByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, tag *models.Tag) error
	DeleteByID(ctx context.Context, tx *gorm.DB, tagID uint) (int64, error)
}

type AuditListInput struct {
	Offset int
	Limit  int
}

type FolderAuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, audit *models.FolderAudit) error
	List(ctx context.Context, tx *gorm.DB, in AuditListInput) ([]models.FolderAudit, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type FileAuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, audit *models.FileAudit) error
	List(ctx context.Context, tx *gorm.DB, in AuditListInput) ([]models.FileAudit, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type TokenBlacklistRepository interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

type Container struct {
	TxManager      TxManager
	Users          UserRepository
	Folders        FolderRepository
	Files          FileRepository
	Likes          LikeRepository
	Tags           TagRepository
	FolderAudits   FolderAuditRepository
	FileAudits     FileAuditRepository
	TokenBlacklist TokenBlacklistRepository
}
