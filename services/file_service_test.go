package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"testing"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"

	"gorm.io/gorm"
)

func setTestConfig() {
	config.AppConfig = &config.Config{
		Storage: config.StorageConfig{
			MaxFileSize:       10 << 20,
			AllowedExtensions: []string{".pdf", ".txt", ".jpg", ".png", ".docx"},
		},
		Thumbnail:  config.ThumbnailConfig{Width: 200, Height: 200, Quality: 80},
		Pagination: config.PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}
}

type fakeFileRepo struct {
	files      map[uint]models.StoredFile
	nextID     uint
	getErr     error
	createErr  error
	updateErr  error
	updateRows *int64
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[uint]models.StoredFile{}, nextID: 1}
}

func (r *fakeFileRepo) GetByID(_ context.Context, _ *gorm.DB, fileID uint) (models.StoredFile, error) {
	if r.getErr != nil {
		return models.StoredFile{}, r.getErr
	}
	file, ok := r.files[fileID]
	if !ok {
		return models.StoredFile{}, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, _ *gorm.DB, in repositories.ListFilesInput) ([]models.StoredFile, error) {
	out := make([]models.StoredFile, 0)
	for _, file := range r.files {
		if file.FolderID != in.FolderID {
			continue
		}
		if in.Search != "" && !strings.Contains(strings.ToLower(file.Title), strings.ToLower(in.Search)) {
			continue
		}
		out = append(out, file)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if in.Limit > 0 {
		if in.Offset >= len(out) {
			return []models.StoredFile{}, nil
		}
		end := in.Offset + in.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[in.Offset:end]
	}
	return out, nil
}

func (r *fakeFileRepo) CountByFolder(_ context.Context, _ *gorm.DB, folderID uint, search string) (int64, error) {
	var count int64
	for _, file := range r.files {
		if file.FolderID != folderID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(file.Title), strings.ToLower(search)) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeFileRepo) Create(_ context.Context, _ *gorm.DB, file *models.StoredFile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if file.ID == 0 {
		file.ID = r.nextID
		r.nextID++
	}
	r.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) UpdateByID(_ context.Context, _ *gorm.DB, fileID uint, updates map[string]interface{}) (int64, error) {
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	if r.updateRows != nil {
		return *r.updateRows, nil
	}
	file, ok := r.files[fileID]
	if !ok {
		return 0, nil
	}
	for key, value := range updates {
		switch key {
		case "title":
			file.Title = value.(string)
		case "folder_id":
			file.FolderID = value.(uint)
		case "stored_name":
			file.StoredName = value.(string)
		case "file_size":
			file.FileSize = value.(int64)
		case "mime_type":
			file.MimeType = value.(string)
		case "is_image":
			file.IsImage = value.(bool)
		case "thumbnail_path":
			file.ThumbnailPath = value.(string)
		}
	}
	r.files[fileID] = file
	return 1, nil
}

func (r *fakeFileRepo) DeleteByID(_ context.Context, _ *gorm.DB, fileID uint) (int64, error) {
	if _, ok := r.files[fileID]; !ok {
		return 0, nil
	}
	delete(r.files, fileID)
	return 1, nil
}

func (r *fakeFileRepo) ListByFolderID(_ context.Context, _ *gorm.DB, folderID uint) ([]models.StoredFile, error) {
	out := make([]models.StoredFile, 0)
	for _, file := range r.files {
		if file.FolderID == folderID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) DeleteByFolderID(_ context.Context, _ *gorm.DB, folderID uint) error {
	for id, file := range r.files {
		if file.FolderID == folderID {
			delete(r.files, id)
		}
	}
	return nil
}

type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
	deleted   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) key(container, name string) string {
	return container + "/" + name
}

func (s *fakeStorage) Upload(_ context.Context, container string, name string, content io.Reader) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.objects[s.key(container, name)] = data
	return nil
}

func (s *fakeStorage) Download(_ context.Context, container string, name string) (io.ReadCloser, error) {
	data, ok := s.objects[s.key(container, name)]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, container string, name string) error {
	key := s.key(container, name)
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Copy(_ context.Context, container string, srcName string, dstName string) error {
	data, ok := s.objects[s.key(container, srcName)]
	if !ok {
		return errors.New("object not found")
	}
	s.objects[s.key(container, dstName)] = append([]byte(nil), data...)
	return nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newUpload(name, content string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{},
		Size:     int64(len(content)),
	}
	return memFile{bytes.NewReader([]byte(content))}, header
}

func newFileServiceForTest(folders *fakeFolderRepo, files *fakeFileRepo, store *fakeStorage) (FileService, *recordingAuditService) {
	audit := &recordingAuditService{}
	return NewFileService(folders, files, store, audit), audit
}

func TestUploadFileForbiddenForStudent(t *testing.T) {
	setTestConfig()
	svc, _ := newFileServiceForTest(newFakeFolderRepo(), newFakeFileRepo(), newFakeStorage())

	payload, header := newUpload("sebenta.pdf", "conteúdo")
	_, err := svc.UploadFile(context.Background(), student, 1, "Sebenta", payload, header)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusForbidden {
		t.Fatalf("expected HTTP 403, got %v", err)
	}
}

func TestUploadFileMissingTitleAndPayload(t *testing.T) {
	setTestConfig()
	svc, _ := newFileServiceForTest(newFakeFolderRepo(), newFakeFileRepo(), newFakeStorage())

	_, err := svc.UploadFile(context.Background(), teacher, 1, "   ", nil, nil)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %v", err)
	}
	fields, ok := appErr.Data.(map[string]string)
	if !ok {
		t.Fatalf("expected field map, got %#v", appErr.Data)
	}
	if fields["title"] == "" || fields["file"] == "" {
		t.Fatalf("expected messages for both title and file, got %#v", fields)
	}
}

func TestUploadFileRejectsDisallowedExtension(t *testing.T) {
	setTestConfig()
	svc, _ := newFileServiceForTest(newFakeFolderRepo(), newFakeFileRepo(), newFakeStorage())

	payload, header := newUpload("malicioso.exe", "MZ")
	_, err := svc.UploadFile(context.Background(), teacher, 1, "Programa", payload, header)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %v", err)
	}
}

func TestUploadFileStoresObjectAndRecordsAudit(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	store := newFakeStorage()

	svc, audit := newFileServiceForTest(folders, files, store)

	payload, header := newUpload("sebenta.pdf", "conteúdo do pdf")
	record, err := svc.UploadFile(context.Background(), teacher, 1, "Sebenta de Biologia", payload, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ID == 0 || record.FolderID != 1 || record.Title != "Sebenta de Biologia" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !strings.HasSuffix(record.StoredName, "_sebenta.pdf") {
		t.Fatalf("stored name should keep a sanitized suffix, got %q", record.StoredName)
	}
	if record.UploadDate.IsZero() {
		t.Fatalf("expected upload date to be set")
	}
	if _, ok := store.objects["files/"+record.StoredName]; !ok {
		t.Fatalf("payload was not stored: %#v", store.objects)
	}
	if len(audit.fileActions) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(audit.fileActions))
	}
	got := audit.fileActions[0]
	if got.actionType != models.FileActionCreated || got.file.ID != record.ID || got.userID != teacher.UserID {
		t.Fatalf("unexpected audit record: %+v", got)
	}
}

func TestUploadFileMetadataFailureCleansUpObject(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.createErr = errors.New("insert failed")
	store := newFakeStorage()

	svc, audit := newFileServiceForTest(folders, files, store)

	payload, header := newUpload("sebenta.pdf", "conteúdo")
	_, err := svc.UploadFile(context.Background(), teacher, 1, "Sebenta", payload, header)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(store.objects) != 0 {
		t.Fatalf("orphaned object left behind: %#v", store.objects)
	}
	if len(audit.fileActions) != 0 {
		t.Fatalf("failed upload must not be audited")
	}
}

func TestEditFileRequiresTitle(t *testing.T) {
	setTestConfig()
	svc, _ := newFileServiceForTest(newFakeFolderRepo(), newFakeFileRepo(), newFakeStorage())

	_, err := svc.EditFile(context.Background(), teacher, 1, EditFileInput{Title: "  "})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %v", err)
	}
}

func TestEditFileRenameKeepsPayload(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc_sebenta.pdf", Title: "Antiga", FolderID: 1}
	files.nextID = 6
	store := newFakeStorage()
	store.objects["files/abc_sebenta.pdf"] = []byte("payload")

	svc, audit := newFileServiceForTest(folders, files, store)

	updated, err := svc.EditFile(context.Background(), teacher, 5, EditFileInput{Title: "Nova"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Nova" || updated.StoredName != "abc_sebenta.pdf" {
		t.Fatalf("rename must not touch the payload, got %+v", updated)
	}
	if _, ok := store.objects["files/abc_sebenta.pdf"]; !ok {
		t.Fatalf("payload object should still exist")
	}
	if len(audit.fileActions) != 1 || audit.fileActions[0].actionType != models.FileActionEdited {
		t.Fatalf("expected one edit audit record, got %#v", audit.fileActions)
	}
}

func TestEditFileReplacesPayloadAndDeletesOldObject(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc_velho.pdf", Title: "Sebenta", FolderID: 1}
	files.nextID = 6
	store := newFakeStorage()
	store.objects["files/abc_velho.pdf"] = []byte("velho")

	svc, _ := newFileServiceForTest(folders, files, store)

	payload, header := newUpload("novo.pdf", "novo conteúdo")
	updated, err := svc.EditFile(context.Background(), teacher, 5, EditFileInput{Title: "Sebenta", Payload: payload, Header: header})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.StoredName == "abc_velho.pdf" {
		t.Fatalf("expected a fresh stored name")
	}
	if _, ok := store.objects["files/abc_velho.pdf"]; ok {
		t.Fatalf("old object should be deleted after the row update")
	}
	if _, ok := store.objects["files/"+updated.StoredName]; !ok {
		t.Fatalf("new object missing: %#v", store.objects)
	}
}

func tinyJPEG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.String()
}

func TestEditFileConflictCleansUpReplacementArtifacts(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc_antiga.jpg", Title: "Foto", FolderID: 1, ThumbnailPath: "abc_antiga.jpg.thumb.jpg"}
	zero := int64(0)
	files.updateRows = &zero
	store := newFakeStorage()
	store.objects["files/abc_antiga.jpg"] = []byte("antiga")
	store.objects["thumbnails/abc_antiga.jpg.thumb.jpg"] = []byte("thumb")

	svc, audit := newFileServiceForTest(folders, files, store)

	payload, header := newUpload("nova.jpg", tinyJPEG(t))
	_, err := svc.EditFile(context.Background(), teacher, 5, EditFileInput{Title: "Foto", Payload: payload, Header: header})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusInternalServerError {
		t.Fatalf("expected HTTP 500 on the conflict, got %v", err)
	}

	// Both replacement artifacts must be rolled back from storage.
	if len(store.objects) != 2 {
		t.Fatalf("expected only the original objects to remain, got %#v", store.objects)
	}
	if _, ok := store.objects["files/abc_antiga.jpg"]; !ok {
		t.Fatalf("original object must survive the conflict")
	}
	if _, ok := store.objects["thumbnails/abc_antiga.jpg.thumb.jpg"]; !ok {
		t.Fatalf("original thumbnail must survive the conflict")
	}
	if len(audit.fileActions) != 0 {
		t.Fatalf("no audit record expected on conflict, got %#v", audit.fileActions)
	}
}

func TestEditFileMovedToMissingFolder(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc.pdf", Title: "Sebenta", FolderID: 1}

	svc, _ := newFileServiceForTest(folders, files, newFakeStorage())

	_, err := svc.EditFile(context.Background(), teacher, 5, EditFileInput{Title: "Sebenta", FolderID: 99})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected HTTP 404 for the target folder, got %v", err)
	}
}

func TestDeleteFileRemovesRowObjectsAndAudits(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc.jpg", Title: "Foto", FolderID: 1, ThumbnailPath: "abc.jpg.thumb.jpg"}
	store := newFakeStorage()
	store.objects["files/abc.jpg"] = []byte("img")
	store.objects["thumbnails/abc.jpg.thumb.jpg"] = []byte("thumb")

	svc, audit := newFileServiceForTest(folders, files, store)

	if err := svc.DeleteFile(context.Background(), teacher, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files.files) != 0 {
		t.Fatalf("row should be gone")
	}
	if len(store.objects) != 0 {
		t.Fatalf("objects should be gone, got %#v", store.objects)
	}
	if len(audit.fileActions) != 1 || audit.fileActions[0].actionType != models.FileActionDeleted {
		t.Fatalf("expected one deletion audit record, got %#v", audit.fileActions)
	}
	if audit.fileActions[0].file.Title != "Foto" {
		t.Fatalf("audit must snapshot the deleted title, got %q", audit.fileActions[0].file.Title)
	}
}

func TestListFilesHiddenFolderNotFoundForStudent(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Oculta", UserID: 1, IsHidden: true}

	svc, _ := newFileServiceForTest(folders, newFakeFileRepo(), newFakeStorage())

	_, err := svc.ListFiles(context.Background(), student, 1, "", 1, 20, "upload_date", "desc")
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected HTTP 404, got %v", err)
	}
}

func TestListFilesPaginates(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	for i := uint(1); i <= 5; i++ {
		files.files[i] = models.StoredFile{ID: i, FolderID: 1, Title: "Doc"}
	}
	files.nextID = 6

	svc, _ := newFileServiceForTest(folders, files, newFakeStorage())

	out, err := svc.ListFiles(context.Background(), teacher, 1, "", 2, 2, "upload_date", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("expected 2 files on page 2, got %d", len(out.Files))
	}
	if out.Pagination.Total != 5 || out.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", out.Pagination)
	}
	if !out.Pagination.HasNext || !out.Pagination.HasPrev {
		t.Fatalf("page 2 of 3 should have both neighbours: %+v", out.Pagination)
	}
}

func TestGetDownloadInfoAppendsExtension(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc_sebenta.pdf", Title: "Sebenta", FolderID: 1, MimeType: "application/pdf", FileSize: 3}
	store := newFakeStorage()
	store.objects["files/abc_sebenta.pdf"] = []byte("pdf")

	svc, _ := newFileServiceForTest(folders, files, store)

	out, err := svc.GetDownloadInfo(context.Background(), student, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer out.Content.Close()

	if out.DownloadName != "Sebenta.pdf" {
		t.Fatalf("expected extension to be appended, got %q", out.DownloadName)
	}
	data, _ := io.ReadAll(out.Content)
	if string(data) != "pdf" {
		t.Fatalf("unexpected payload: %q", data)
	}
}

func TestGetThumbnailInfoStreamsWithUnknownLength(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc.jpg", Title: "Foto", FolderID: 1, ThumbnailPath: "abc.jpg.thumb.jpg"}
	store := newFakeStorage()
	store.objects["thumbnails/abc.jpg.thumb.jpg"] = []byte("jpeg-bytes")

	svc, _ := newFileServiceForTest(folders, files, store)

	out, err := svc.GetThumbnailInfo(context.Background(), teacher, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer out.Content.Close()

	// The size must be negative so the handler never announces a zero
	// Content-Length for a non-empty body.
	if out.Size >= 0 {
		t.Fatalf("expected a negative size for an untracked length, got %d", out.Size)
	}
	if out.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
	data, _ := io.ReadAll(out.Content)
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
}

func TestGetThumbnailInfoMissingThumbnail(t *testing.T) {
	setTestConfig()
	folders := newFakeFolderRepo()
	folders.folders[1] = models.Folder{ID: 1, Name: "Biologia", UserID: 1}
	files := newFakeFileRepo()
	files.files[5] = models.StoredFile{ID: 5, StoredName: "abc.pdf", Title: "Sebenta", FolderID: 1}

	svc, _ := newFileServiceForTest(folders, files, newFakeStorage())

	_, err := svc.GetThumbnailInfo(context.Background(), teacher, 5)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected HTTP 404, got %v", err)
	}
}
