package services

import (
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/storage"
)

type Container struct {
	Auth   AuthService
	Audit  AuditService
	Folder FolderService
	File   FileService
	Tag    TagService
}

func NewContainer(repos repositories.Container, store storage.Storage) *Container {
	audit := NewAuditService(repos.Folders, repos.FolderAudits, repos.FileAudits)
	return &Container{
		Auth:   NewAuthService(repos.Users, repos.TokenBlacklist),
		Audit:  audit,
		Folder: NewFolderService(repos.TxManager, repos.Folders, repos.Files, repos.Likes, repos.Tags, store, audit),
		File:   NewFileService(repos.Folders, repos.Files, store, audit),
		Tag:    NewTagService(repos.Tags),
	}
}
