package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
)

type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, p Principal, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, p Principal, tagID uint) error
}

type tagService struct {
	tags repositories.TagRepository
}

func NewTagService(tags repositories.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tags.List(ctx, nil)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "Falha ao consultar etiquetas", err)
	}
	return tags, nil
}

func (s *tagService) CreateTag(ctx context.Context, p Principal, name string) (models.Tag, error) {
	if !p.IsTeacher() {
		return models.Tag{}, newAppError(http.StatusForbidden, "Apenas professores podem criar etiquetas", nil)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.Tag{}, newAppErrorWithData(http.StatusBadRequest, "Dados inválidos", map[string]string{
			"name": "O nome da etiqueta é obrigatório",
		}, nil)
	}

	count, err := s.tags.CountByName(ctx, nil, trimmed, 0)
	if err != nil {
		return models.Tag{}, newAppError(http.StatusInternalServerError, "Falha ao verificar etiquetas existentes", err)
	}
	if count > 0 {
		return models.Tag{}, newAppError(http.StatusBadRequest, "Já existe uma etiqueta com esse nome", nil)
	}

	tag := models.Tag{Name: trimmed}
	if err := s.tags.Create(ctx, nil, &tag); err != nil {
		return models.Tag{}, newAppError(http.StatusInternalServerError, "Falha ao criar a etiqueta", err)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, p Principal, tagID uint) error {
	if !p.IsTeacher() {
		return newAppError(http.StatusForbidden, "Apenas professores podem remover etiquetas", nil)
	}

	rows, err := s.tags.DeleteByID(ctx, nil, tagID)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao remover a etiqueta", err)
	}
	if rows == 0 {
		return newAppError(http.StatusNotFound, "Etiqueta não encontrada", nil)
	}
	return nil
}
