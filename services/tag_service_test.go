package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
)

func TestCreateTagForbiddenForStudent(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())

	_, err := svc.CreateTag(context.Background(), student, "quimica")
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusForbidden {
		t.Fatalf("expected HTTP 403, got %v", err)
	}
}

func TestCreateTagTrimsAndRejectsDuplicates(t *testing.T) {
	tags := newFakeTagRepo()
	svc := NewTagService(tags)

	tag, err := svc.CreateTag(context.Background(), teacher, "  química  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Name != "química" {
		t.Fatalf("expected trimmed name, got %q", tag.Name)
	}

	_, err = svc.CreateTag(context.Background(), teacher, "química")
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400 for duplicate, got %v", err)
	}
}

func TestCreateTagEmptyName(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())

	_, err := svc.CreateTag(context.Background(), teacher, "   ")
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400, got %v", err)
	}
}

func TestDeleteTagMissingIsNotFound(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())

	err := svc.DeleteTag(context.Background(), teacher, 42)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected HTTP 404, got %v", err)
	}
}

func TestDeleteTagRemovesIt(t *testing.T) {
	tags := newFakeTagRepo()
	tags.tags[1] = models.Tag{ID: 1, Name: "química"}
	tags.nextID = 2

	svc := NewTagService(tags)

	if err := svc.DeleteTag(context.Background(), teacher, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags.tags) != 0 {
		t.Fatalf("tag should be gone, got %#v", tags.tags)
	}
}
