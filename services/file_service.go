package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/storage"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"gorm.io/gorm"
)

type FileListOutput struct {
	Files      []models.StoredFile  `json:"files"`
	Pagination utils.PaginationData `json:"pagination"`
}

type EditFileInput struct {
	Title    string
	FolderID uint
	Payload  multipart.File
	Header   *multipart.FileHeader
}

type FileAccessOutput struct {
	File         models.StoredFile
	Content      io.ReadCloser
	ContentType  string
	Size         int64
	DownloadName string
}

type FileService interface {
	ListFiles(ctx context.Context, p Principal, folderID uint, search string, page int, pageSize int, sortBy string, order string) (FileListOutput, error)
	UploadFile(ctx context.Context, p Principal, folderID uint, title string, file multipart.File, header *multipart.FileHeader) (models.StoredFile, error)
	EditFile(ctx context.Context, p Principal, fileID uint, in EditFileInput) (models.StoredFile, error)
	DeleteFile(ctx context.Context, p Principal, fileID uint) error
	GetDownloadInfo(ctx context.Context, p Principal, fileID uint) (FileAccessOutput, error)
	GetThumbnailInfo(ctx context.Context, p Principal, fileID uint) (FileAccessOutput, error)
}

type fileService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	store   storage.Storage
	audit   AuditService
}

func NewFileService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	store storage.Storage,
	audit AuditService,
) FileService {
	return &fileService{
		folders: folders,
		files:   files,
		store:   store,
		audit:   audit,
	}
}

func (s *fileService) visibleFolder(ctx context.Context, p Principal, folderID uint) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
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

func (s *fileService) ListFiles(ctx context.Context, p Principal, folderID uint, search string, page int, pageSize int, sortBy string, order string) (FileListOutput, error) {
	folder, err := s.visibleFolder(ctx, p, folderID)
	if err != nil {
		return FileListOutput{}, err
	}

	page, pageSize = normalizePage(page, pageSize)
	search = strings.TrimSpace(search)

	total, err := s.files.CountByFolder(ctx, nil, folder.ID, search)
	if err != nil {
		return FileListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao contar ficheiros", err)
	}

	files, err := s.files.ListByFolder(ctx, nil, repositories.ListFilesInput{
		FolderID: folder.ID,
		Search:   search,
		SortBy:   sortBy,
		Order:    order,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return FileListOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar ficheiros", err)
	}

	return FileListOutput{Files: files, Pagination: paginationData(page, pageSize, total)}, nil
}

// uploadPayload writes the object and, for images, a best-effort
// thumbnail. Returns the thumbnail object name, empty when none exists.
func (s *fileService) uploadPayload(ctx context.Context, storedName string, file multipart.File, originalName string) (string, error) {
	thumbnailPath := ""
	if IsImageFile(originalName) {
		if thumb, thumbErr := GenerateThumbnail(file); thumbErr == nil {
			thumbName := storedName + ".thumb.jpg"
			if err := s.store.Upload(ctx, storage.ContainerThumbnails, thumbName, thumb); err == nil {
				thumbnailPath = thumbName
			}
		}
		seeker, ok := file.(io.Seeker)
		if !ok {
			return "", newAppError(http.StatusInternalServerError, "O ficheiro não suporta releitura", nil)
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", newAppError(http.StatusInternalServerError, "Falha ao reposicionar o ficheiro", err)
		}
	}

	if err := s.store.Upload(ctx, storage.ContainerFiles, storedName, file); err != nil {
		if thumbnailPath != "" {
			_ = s.store.Delete(ctx, storage.ContainerThumbnails, thumbnailPath)
		}
		return "", newAppError(http.StatusInternalServerError, "Falha ao guardar o ficheiro", err)
	}
	return thumbnailPath, nil
}

func validateUpload(title string, file multipart.File, header *multipart.FileHeader) (string, error) {
	fields := map[string]string{}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		fields["title"] = "O título do ficheiro é obrigatório"
	}
	if file == nil || header == nil || header.Size == 0 {
		fields["file"] = "O ficheiro é obrigatório"
	}
	if len(fields) > 0 {
		return "", newAppErrorWithData(http.StatusBadRequest, "Dados inválidos", fields, nil)
	}
	return trimmed, nil
}

func (s *fileService) UploadFile(ctx context.Context, p Principal, folderID uint, title string, file multipart.File, header *multipart.FileHeader) (models.StoredFile, error) {
	if !p.IsTeacher() {
		return models.StoredFile{}, newAppError(http.StatusForbidden, "Apenas professores podem carregar ficheiros", nil)
	}

	title, err := validateUpload(title, file, header)
	if err != nil {
		return models.StoredFile{}, err
	}
	if header.Size > config.AppConfig.Storage.MaxFileSize {
		return models.StoredFile{}, newAppError(http.StatusBadRequest, "O ficheiro excede o tamanho máximo permitido", nil)
	}
	if !isFileExtensionAllowed(header.Filename) {
		return models.StoredFile{}, newAppError(http.StatusBadRequest, "Tipo de ficheiro não suportado", nil)
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StoredFile{}, newAppError(http.StatusNotFound, "Pasta não encontrada", nil)
		}
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta", err)
	}

	storedName := buildStoredName(header.Filename)
	thumbnailPath, err := s.uploadPayload(ctx, storedName, file, header.Filename)
	if err != nil {
		return models.StoredFile{}, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = getMimeType(filepath.Ext(header.Filename))
	}

	record := models.StoredFile{
		StoredName:    storedName,
		Title:         title,
		FolderID:      folder.ID,
		UserID:        p.UserID,
		FileSize:      header.Size,
		MimeType:      mimeType,
		IsImage:       IsImageFile(header.Filename),
		ThumbnailPath: thumbnailPath,
		UploadDate:    time.Now(),
	}
	if err := s.files.Create(ctx, nil, &record); err != nil {
		_ = s.store.Delete(ctx, storage.ContainerFiles, storedName)
		if thumbnailPath != "" {
			_ = s.store.Delete(ctx, storage.ContainerThumbnails, thumbnailPath)
		}
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao guardar os metadados do ficheiro", err)
	}

	if err := s.audit.RecordFileCreation(ctx, record, p.UserID); err != nil {
		return models.StoredFile{}, err
	}
	return record, nil
}

func (s *fileService) EditFile(ctx context.Context, p Principal, fileID uint, in EditFileInput) (models.StoredFile, error) {
	if !p.IsTeacher() {
		return models.StoredFile{}, newAppError(http.StatusForbidden, "Apenas professores podem editar ficheiros", nil)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.StoredFile{}, newAppErrorWithData(http.StatusBadRequest, "Dados inválidos", map[string]string{
			"title": "O título do ficheiro é obrigatório",
		}, nil)
	}

	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StoredFile{}, newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
		}
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o ficheiro", err)
	}

	targetFolderID := file.FolderID
	if in.FolderID > 0 && in.FolderID != file.FolderID {
		targetFolder, err := s.folders.GetByID(ctx, nil, in.FolderID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.StoredFile{}, newAppError(http.StatusNotFound, "Pasta de destino não encontrada", nil)
			}
			return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao consultar a pasta de destino", err)
		}
		targetFolderID = targetFolder.ID
	}

	now := time.Now()
	updates := map[string]interface{}{
		"title":      title,
		"folder_id":  targetFolderID,
		"updated_at": now,
	}

	oldStoredName := ""
	oldThumbnail := ""
	replacing := in.Payload != nil && in.Header != nil && in.Header.Size > 0
	if replacing {
		if in.Header.Size > config.AppConfig.Storage.MaxFileSize {
			return models.StoredFile{}, newAppError(http.StatusBadRequest, "O ficheiro excede o tamanho máximo permitido", nil)
		}
		if !isFileExtensionAllowed(in.Header.Filename) {
			return models.StoredFile{}, newAppError(http.StatusBadRequest, "Tipo de ficheiro não suportado", nil)
		}

		storedName := buildStoredName(in.Header.Filename)
		thumbnailPath, upErr := s.uploadPayload(ctx, storedName, in.Payload, in.Header.Filename)
		if upErr != nil {
			return models.StoredFile{}, upErr
		}

		mimeType := in.Header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = getMimeType(filepath.Ext(in.Header.Filename))
		}

		oldStoredName = file.StoredName
		oldThumbnail = file.ThumbnailPath
		updates["stored_name"] = storedName
		updates["file_size"] = in.Header.Size
		updates["mime_type"] = mimeType
		updates["is_image"] = IsImageFile(in.Header.Filename)
		updates["thumbnail_path"] = thumbnailPath
		updates["upload_date"] = now
	}

	rows, err := s.files.UpdateByID(ctx, nil, file.ID, updates)
	if err != nil {
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao editar o ficheiro", err)
	}
	if rows == 0 {
		if newName, ok := updates["stored_name"].(string); ok {
			_ = s.store.Delete(ctx, storage.ContainerFiles, newName)
		}
		if newThumb, ok := updates["thumbnail_path"].(string); ok && newThumb != "" {
			_ = s.store.Delete(ctx, storage.ContainerThumbnails, newThumb)
		}
		if _, recheckErr := s.files.GetByID(ctx, nil, file.ID); errors.Is(recheckErr, gorm.ErrRecordNotFound) {
			return models.StoredFile{}, newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
		}
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Conflito ao editar o ficheiro", nil)
	}

	// The replaced object is unreferenced once the row update lands.
	if oldStoredName != "" {
		_ = s.store.Delete(ctx, storage.ContainerFiles, oldStoredName)
	}
	if oldThumbnail != "" {
		_ = s.store.Delete(ctx, storage.ContainerThumbnails, oldThumbnail)
	}

	updated, err := s.files.GetByID(ctx, nil, file.ID)
	if err != nil {
		return models.StoredFile{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o ficheiro", err)
	}

	if err := s.audit.RecordFileEdit(ctx, updated, p.UserID); err != nil {
		return models.StoredFile{}, err
	}
	return updated, nil
}

func (s *fileService) DeleteFile(ctx context.Context, p Principal, fileID uint) error {
	if !p.IsTeacher() {
		return newAppError(http.StatusForbidden, "Apenas professores podem remover ficheiros", nil)
	}

	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
		}
		return newAppError(http.StatusInternalServerError, "Falha ao consultar o ficheiro", err)
	}

	rows, err := s.files.DeleteByID(ctx, nil, file.ID)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao remover o ficheiro", err)
	}
	if rows == 0 {
		return newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
	}

	_ = s.store.Delete(ctx, storage.ContainerFiles, file.StoredName)
	if file.ThumbnailPath != "" {
		_ = s.store.Delete(ctx, storage.ContainerThumbnails, file.ThumbnailPath)
	}

	return s.audit.RecordFileDeletion(ctx, file, p.UserID)
}

func (s *fileService) GetDownloadInfo(ctx context.Context, p Principal, fileID uint) (FileAccessOutput, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FileAccessOutput{}, newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
		}
		return FileAccessOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o ficheiro", err)
	}
	if _, err := s.visibleFolder(ctx, p, file.FolderID); err != nil {
		return FileAccessOutput{}, err
	}

	content, err := s.store.Download(ctx, storage.ContainerFiles, file.StoredName)
	if err != nil {
		return FileAccessOutput{}, newAppError(http.StatusNotFound, "Ficheiro não existe no armazenamento", err)
	}

	downloadName := file.Title
	if ext := filepath.Ext(file.StoredName); ext != "" && !strings.HasSuffix(strings.ToLower(downloadName), ext) {
		downloadName += ext
	}

	return FileAccessOutput{
		File:         file,
		Content:      content,
		ContentType:  file.MimeType,
		Size:         file.FileSize,
		DownloadName: downloadName,
	}, nil
}

func (s *fileService) GetThumbnailInfo(ctx context.Context, p Principal, fileID uint) (FileAccessOutput, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FileAccessOutput{}, newAppError(http.StatusNotFound, "Ficheiro não encontrado", nil)
		}
		return FileAccessOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o ficheiro", err)
	}
	if _, err := s.visibleFolder(ctx, p, file.FolderID); err != nil {
		return FileAccessOutput{}, err
	}
	if file.ThumbnailPath == "" {
		return FileAccessOutput{}, newAppError(http.StatusNotFound, "Miniatura não disponível", nil)
	}

	content, err := s.store.Download(ctx, storage.ContainerThumbnails, file.ThumbnailPath)
	if err != nil {
		return FileAccessOutput{}, newAppError(http.StatusNotFound, "Miniatura não existe no armazenamento", err)
	}

	// Thumbnail byte sizes are not tracked in the metadata row; a size
	// of -1 tells the transport to stream without a Content-Length.
	return FileAccessOutput{File: file, Content: content, ContentType: "image/jpeg", Size: -1}, nil
}
