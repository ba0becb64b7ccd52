package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/storage"

	"gorm.io/gorm"
)

type FolderInput struct {
	Name     string
	IsHidden bool
	TagIDs   []uint
}

type FolderListItem struct {
	models.Folder
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type FolderListOutput struct {
	Folders []FolderListItem `json:"folders"`
}

type FolderDetailOutput struct {
	Folder     models.Folder       `json:"folder"`
	Files      []models.StoredFile `json:"files"`
	Liked      bool                `json:"liked"`
	LikesCount int64               `json:"likes_count"`
}

type FolderService interface {
	ListFolders(ctx context.Context, p Principal, search string, sort string, tagID uint) (FolderListOutput, error)
	GetFolder(ctx context.Context, p Principal, folderID uint) (FolderDetailOutput, error)
	CreateFolder(ctx context.Context, p Principal, in FolderInput) (models.Folder, error)
	EditFolder(ctx context.Context, p Principal, folderID uint, in FolderInput) (models.Folder, error)
	DeleteFolder(ctx context.Context, p Principal, folderID uint) error
	ToggleLike(ctx context.Context, p Principal, folderID uint) (bool, error)
}

type folderService struct {
	txManager TxManager
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	likes     repositories.LikeRepository
	tags      repositories.TagRepository
	store     storage.Storage
	audit     AuditService
}

func NewFolderService(
	txManager TxManager,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	likes repositories.LikeRepository,
	tags repositories.TagRepository,
	store storage.Storage,
	audit AuditService,
) FolderService {
	return &folderService{
		txManager: txManager,
		folders:   folders,
		files:     files,
		likes:     likes,
		tags:      tags,
		store:     store,
		audit:     audit,
	}
}

func validateFolderName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", newAppErrorWithData(http.StatusBadRequest, "Dados inválidos", map[string]string{
			"name": "O nome da pasta é obrigatório",
		}, nil)
	}
	return trimmed, nil
}

func (s *folderService) resolveTags(ctx context.Context, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tags.GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "Falha ao consultar etiquetas", err)
	}
	if len(tags) != len(tagIDs) {
		return nil, newAppError(http.StatusNotFound, "Etiqueta não encontrada", nil)
	}
	return tags, nil
}

func (s *folderService) ListFolders(ctx context.Context, p Principal, search string, sort string, tagID uint) (FolderListOutput, error) {
	folders, err := s.folders.List(ctx, nil, repositories.ListFoldersInput{
		Search:        strings.TrimSpace(search),
		Sort:          sort,
		TagID:         tagID,
		IncludeHidden: p.IsTeacher(),
	})
	if err != nil {
		return FolderListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar pastas", err)
	}

	likedIDs, err := s.likes.ListFolderIDsByUser(ctx, nil, p.UserID)
	if err != nil {
		return FolderListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar favoritos", err)
	}
	likedSet := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}

	items := make([]FolderListItem, 0, len(folders))
	for _, folder := range folders {
		count, err := s.likes.CountByFolder(ctx, nil, folder.ID)
		if err != nil {
			return FolderListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao contar favoritos", err)
		}
		items = append(items, FolderListItem{Folder: folder, Liked: likedSet[folder.ID], LikesCount: count})
	}

	return FolderListOutput{Folders: items}, nil
}

// getVisibleFolder applies the visibility rule before anything else: a
// hidden folder simply does not exist for non-teachers.
func (s *folderService) getVisibleFolder(ctx context.Context, p Principal, folderID uint, preloadTags bool) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID, preloadTags)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta", err)
	}
	if folder.IsHidden && !p.IsTeacher() {
		return models.Folder{}, newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
	}
	return folder, nil
}

func (s *folderService) GetFolder(ctx context.Context, p Principal, folderID uint) (FolderDetailOutput, error) {
	folder, err := s.getVisibleFolder(ctx, p, folderID, true)
	if err != nil {
		return FolderDetailOutput{}, err
	}

	files, err := s.files.ListByFolderID(ctx, nil, folder.ID)
	if err != nil {
		return FolderDetailOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar ficheiros da pasta", err)
	}

	liked, err := s.likes.Exists(ctx, nil, p.UserID, folder.ID)
	if err != nil {
		return FolderDetailOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar favoritos", err)
	}
	count, err := s.likes.CountByFolder(ctx, nil, folder.ID)
	if err != nil {
		return FolderDetailOutput{}, newAppError(http.StatusInternalServerError, "Falha ao contar favoritos", err)
	}

	return FolderDetailOutput{Folder: folder, Files: files, Liked: liked, LikesCount: count}, nil
}

func (s *folderService) CreateFolder(ctx context.Context, p Principal, in FolderInput) (models.Folder, error) {
	if !p.IsTeacher() {
		return models.Folder{}, newAppError(http.StatusForbidden, "Apenas professores podem criar pastas", nil)
	}

	name, err := validateFolderName(in.Name)
	if err != nil {
		return models.Folder{}, err
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return models.Folder{}, err
	}

	folder := models.Folder{
		Name:     name,
		UserID:   p.UserID,
		IsHidden: in.IsHidden,
	}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.folders.Create(ctx, tx, &folder); err != nil {
			return err
		}
		if len(tags) > 0 {
			return s.folders.ReplaceTags(ctx, tx, &folder, tags)
		}
		return nil
	})
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "Falha ao criar a pasta", err)
	}

	if err := s.audit.RecordFolderAction(ctx, p.UserID, FolderActionCreate, folder.ID, folder.Name); err != nil {
		return models.Folder{}, err
	}

	folder.Tags = tags
	return folder, nil
}

func (s *folderService) EditFolder(ctx context.Context, p Principal, folderID uint, in FolderInput) (models.Folder, error) {
	if !p.IsTeacher() {
		return models.Folder{}, newAppError(http.StatusForbidden, "Apenas professores podem editar pastas", nil)
	}

	name, err := validateFolderName(in.Name)
	if err != nil {
		return models.Folder{}, err
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta", err)
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return models.Folder{}, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"name":       name,
		"is_hidden":  in.IsHidden,
		"updated_at": now,
	}
	// Creation date is set once. Backfill only when a legacy row never
	// had one.
	if folder.CreatedAt.IsZero() {
		updates["created_at"] = now
	}

	var rows int64
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		var txErr error
		rows, txErr = s.folders.UpdateByID(ctx, tx, folder.ID, updates)
		if txErr != nil {
			return txErr
		}
		if rows == 0 {
			return nil
		}
		return s.folders.ReplaceTags(ctx, tx, &folder, tags)
	})
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "Falha ao editar a pasta", err)
	}
	if rows == 0 {
		// The row vanished between read and write. Re-check once and
		// report not-found when it is gone.
		if _, recheckErr := s.folders.GetByID(ctx, nil, folder.ID, false); errors.Is(recheckErr, gorm.ErrRecordNotFound) {
			return models.Folder{}, newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "Conflito ao editar a pasta", nil)
	}

	if err := s.audit.RecordFolderAction(ctx, p.UserID, FolderActionUpdate, folder.ID, name); err != nil {
		return models.Folder{}, err
	}

	folder.Name = name
	folder.IsHidden = in.IsHidden
	folder.UpdatedAt = now
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.Tags = tags
	return folder, nil
}

func (s *folderService) DeleteFolder(ctx context.Context, p Principal, folderID uint) error {
	if !p.IsTeacher() {
		return newAppError(http.StatusForbidden, "Apenas professores podem remover pastas", nil)
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
		}
		return newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta", err)
	}

	// Snapshot the stored names before the rows disappear, so the
	// backing objects can be removed once the cascade commits.
	orphans, err := s.files.ListByFolderID(ctx, nil, folder.ID)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao consultar os ficheiros da pasta", err)
	}

	var rows int64
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.likes.DeleteByFolder(ctx, tx, folder.ID); err != nil {
			return err
		}
		if err := s.folders.ClearTags(ctx, tx, &folder); err != nil {
			return err
		}
		if err := s.files.DeleteByFolderID(ctx, tx, folder.ID); err != nil {
			return err
		}
		var txErr error
		rows, txErr = s.folders.DeleteByID(ctx, tx, folder.ID)
		return txErr
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao remover a pasta", err)
	}
	if rows == 0 {
		return newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
	}

	for _, file := range orphans {
		_ = s.store.Delete(ctx, storage.ContainerFiles, file.StoredName)
		if file.ThumbnailPath != "" {
			_ = s.store.Delete(ctx, storage.ContainerThumbnails, file.ThumbnailPath)
		}
	}

	// Audit rows reference the folder only by snapshot; nothing here
	// touches the existing trail.
	return s.audit.RecordFolderAction(ctx, p.UserID, FolderActionDelete, folder.ID, folder.Name)
}

func (s *folderService) ToggleLike(ctx context.Context, p Principal, folderID uint) (bool, error) {
	if _, err := s.getVisibleFolder(ctx, p, folderID, false); err != nil {
		return false, err
	}

	liked, err := s.likes.Exists(ctx, nil, p.UserID, folderID)
	if err != nil {
		return false, newAppError(http.StatusInternalServerError, "Falha ao consultar favoritos", err)
	}

	if liked {
		if _, err := s.likes.Delete(ctx, nil, p.UserID, folderID); err != nil {
			return false, newAppError(http.StatusInternalServerError, "Falha ao remover favorito", err)
		}
		return false, nil
	}

	like := models.FolderLike{UserID: p.UserID, FolderID: folderID}
	if err := s.likes.Create(ctx, nil, &like); err != nil {
		// A concurrent toggle can win the insert race. The composite key
		// makes that visible as a duplicate; treat it as already liked.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, newAppError(http.StatusInternalServerError, "Falha ao adicionar favorito", err)
	}
	return true, nil
}
