package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"gorm.io/gorm"
)

// Folder audit action labels. Free-form strings, not an enum in the store.
const (
	FolderActionCreate = "Create"
	FolderActionUpdate = "Update"
	FolderActionDelete = "Delete"
)

type FolderAuditListOutput struct {
	Audits     []models.FolderAudit `json:"audits"`
	Pagination utils.PaginationData `json:"pagination"`
}

type FileAuditListOutput struct {
	Audits     []models.FileAudit   `json:"audits"`
	Pagination utils.PaginationData `json:"pagination"`
}

// AuditService appends one immutable row per logical action. Callers make
// exactly one record call per create/edit/delete; nothing is deduplicated
// or batched here, and nothing is ever updated or deleted.
type AuditService interface {
	RecordFolderAction(ctx context.Context, userID uint, actionType string, folderID uint, folderName string) error
	RecordFileCreation(ctx context.Context, file models.StoredFile, userID uint) error
	RecordFileEdit(ctx context.Context, file models.StoredFile, userID uint) error
	RecordFileDeletion(ctx context.Context, file models.StoredFile, userID uint) error
	ListFolderAudits(ctx context.Context, p Principal, page int, pageSize int) (FolderAuditListOutput, error)
	ListFileAudits(ctx context.Context, p Principal, page int, pageSize int) (FileAuditListOutput, error)
}

type auditService struct {
	folders      repositories.FolderRepository
	folderAudits repositories.FolderAuditRepository
	fileAudits   repositories.FileAuditRepository
}

func NewAuditService(
	folders repositories.FolderRepository,
	folderAudits repositories.FolderAuditRepository,
	fileAudits repositories.FileAuditRepository,
) AuditService {
	return &auditService{folders: folders, folderAudits: folderAudits, fileAudits: fileAudits}
}

func (s *auditService) RecordFolderAction(ctx context.Context, userID uint, actionType string, folderID uint, folderName string) error {
	audit := models.FolderAudit{
		UserID:     userID,
		ActionType: actionType,
		Timestamp:  time.Now().UTC(),
		FolderID:   folderID,
		FolderName: folderName,
	}
	if err := s.folderAudits.Create(ctx, nil, &audit); err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao registar auditoria da pasta", err)
	}
	return nil
}

// recordFileAction resolves the file's folder so the audit row carries a
// name snapshot. An unresolvable folder reference fails the call and
// writes nothing.
func (s *auditService) recordFileAction(ctx context.Context, file models.StoredFile, userID uint, actionType string) error {
	folder, err := s.folders.GetByID(ctx, nil, file.FolderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "Pasta associada ao ficheiro não existe", nil)
		}
		return newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta do ficheiro", err)
	}

	audit := models.FileAudit{
		Timestamp:       time.Now().UTC(),
		UserID:          userID,
		ActionType:      actionType,
		FileID:          file.ID,
		StoredFileTitle: file.Title,
		FolderName:      folder.Name,
	}
	if err := s.fileAudits.Create(ctx, nil, &audit); err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao registar auditoria do ficheiro", err)
	}
	return nil
}

func (s *auditService) RecordFileCreation(ctx context.Context, file models.StoredFile, userID uint) error {
	return s.recordFileAction(ctx, file, userID, models.FileActionCreated)
}

func (s *auditService) RecordFileEdit(ctx context.Context, file models.StoredFile, userID uint) error {
	return s.recordFileAction(ctx, file, userID, models.FileActionEdited)
}

func (s *auditService) RecordFileDeletion(ctx context.Context, file models.StoredFile, userID uint) error {
	return s.recordFileAction(ctx, file, userID, models.FileActionDeleted)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > config.AppConfig.Pagination.MaxPageSize {
		pageSize = config.AppConfig.Pagination.DefaultPageSize
	}
	return page, pageSize
}

func paginationData(page, pageSize int, total int64) utils.PaginationData {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	return utils.PaginationData{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func (s *auditService) ListFolderAudits(ctx context.Context, p Principal, page int, pageSize int) (FolderAuditListOutput, error) {
	if !p.IsTeacher() {
		return FolderAuditListOutput{}, newAppError(http.StatusForbidden, "Apenas professores podem consultar o registo de auditoria", nil)
	}
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.folderAudits.Count(ctx, nil)
	if err != nil {
		return FolderAuditListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao contar registos de auditoria", err)
	}
	audits, err := s.folderAudits.List(ctx, nil, repositories.AuditListInput{Offset: (page - 1) * pageSize, Limit: pageSize})
	if err != nil {
		return FolderAuditListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar registos de auditoria", err)
	}

	return FolderAuditListOutput{Audits: audits, Pagination: paginationData(page, pageSize, total)}, nil
}

func (s *auditService) ListFileAudits(ctx context.Context, p Principal, page int, pageSize int) (FileAuditListOutput, error) {
	if !p.IsTeacher() {
		return FileAuditListOutput{}, newAppError(http.StatusForbidden, "Apenas professores podem consultar o registo de auditoria", nil)
	}
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.fileAudits.Count(ctx, nil)
	if err != nil {
		return FileAuditListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao contar registos de auditoria", err)
	}
	audits, err := s.fileAudits.List(ctx, nil, repositories.AuditListInput{Offset: (page - 1) * pageSize, Limit: pageSize})
	if err != nil {
		return FileAuditListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar registos de auditoria", err)
	}

	return FileAuditListOutput{Audits: audits, Pagination: paginationData(page, pageSize, total)}, nil
}
