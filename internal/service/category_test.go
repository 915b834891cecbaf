package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"instruks/internal/domain"
	"instruks/internal/domain/models"
	"instruks/internal/domain/services"
)

// mockCategoryRepo is an in-memory CategoryRepository.
type mockCategoryRepo struct {
	categories map[string]*models.Category
	inUse      map[string]bool
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		categories: make(map[string]*models.Category),
		inUse:      make(map[string]bool),
	}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *models.Category) error {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return &domain.ConflictError{Message: "duplicate name", ResourceType: "category", ResourceID: c.ID}
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *models.Category) error {
	if _, ok := m.categories[category.ID]; !ok {
		return fmt.Errorf("category %s: %w", category.ID, domain.ErrNotFound)
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	// Mirror the restrict constraint of the real schema.
	if m.inUse[id] {
		return &domain.ConflictError{Message: "category is still referenced", ResourceType: "category", ResourceID: id}
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) GetAll(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func newTestCategoryService(repo *mockCategoryRepo) services.CategoryService {
	return NewCategoryService(repo, slog.Default())
}

func TestCategoryService_Create(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	created, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" || created.Name != "Hygiene" {
		t.Errorf("unexpected category: %+v", created)
	}
	if created.ParentID != nil {
		t.Errorf("root category must have no parent")
	}
}

func TestCategoryService_Create_WithParent(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	parent, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "General"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	child, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("Create with parent failed: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("child must reference its parent: %+v", child.ParentID)
	}
}

func TestCategoryService_Create_UnknownParent(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	missing := "11111111-2222-4333-8444-555555555555"
	_, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Orphan", ParentID: &missing})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown parent, got %v", err)
	}
}

func TestCategoryService_Create_Validation(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	badParent := "not-a-uuid"
	tests := []struct {
		name    string
		payload *services.CategoryPayload
	}{
		{"empty name", &services.CategoryPayload{Name: ""}},
		{"malformed parent id", &services.CategoryPayload{Name: "X", ParentID: &badParent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), doctor(), tt.payload)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCategoryService_Create_RequiresDoctor(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	_, err := svc.Create(context.Background(), nurse(), &services.CategoryPayload{Name: "Hygiene"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	if _, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestCategoryService_Update(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	created, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := svc.Update(context.Background(), doctor(), created.ID, &services.CategoryPayload{Name: "Hand Hygiene"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected update to hit")
	}
	if repo.categories[created.ID].Name != "Hand Hygiene" {
		t.Errorf("name not updated: %+v", repo.categories[created.ID])
	}

	ok, err = svc.Update(context.Background(), doctor(), "66666666-7777-4888-8999-000000000000", &services.CategoryPayload{Name: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("missing category must report false")
	}
}

func TestCategoryService_Delete(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	created, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := svc.Delete(context.Background(), doctor(), created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected delete to hit")
	}

	ok, err = svc.Delete(context.Background(), doctor(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("second delete must report false")
	}
}

func TestCategoryService_Delete_InUseConflicts(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newTestCategoryService(repo)

	created, err := svc.Create(context.Background(), doctor(), &services.CategoryPayload{Name: "Hygiene"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	repo.inUse[created.ID] = true

	_, err = svc.Delete(context.Background(), doctor(), created.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict for referenced category, got %v", err)
	}
}
