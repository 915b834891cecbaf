package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"instruks/internal/domain"
	"instruks/internal/domain/models"
	"instruks/internal/render"
	"instruks/internal/service/sanitizer"
)

func seedVersion(t *testing.T, repo *mockInstruksRepo, content string) *models.Instruks {
	t.Helper()
	desc := "Short summary."
	row := &models.Instruks{
		ID:            "3c1d2e4f-0000-4000-8000-000000000001",
		DocumentID:    "3c1d2e4f-0000-4000-8000-000000000002",
		VersionNumber: 1,
		IsLatest:      true,
		Title:         "Hand Hygiene",
		Description:   &desc,
		Content:       content,
		CategoryID:    testCategoryID,
		CategoryName:  "Hygiene",
	}
	if err := repo.Create(context.Background(), row); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return row
}

func TestPDFService_Generate(t *testing.T) {
	repo := newMockInstruksRepo()
	row := seedVersion(t, repo, "<h1>Hand Hygiene</h1><p>Wash <b>thoroughly</b>.</p>")

	theme, err := render.DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	svc := NewPDFService(repo, sanitizer.New(), render.NewPDFRenderer(theme, ""), slog.Default())

	out, err := svc.Generate(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
}

func TestPDFService_Generate_MissingVersion(t *testing.T) {
	repo := newMockInstruksRepo()
	theme, err := render.DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	svc := NewPDFService(repo, sanitizer.New(), render.NewPDFRenderer(theme, ""), slog.Default())

	_, err = svc.Generate(context.Background(), "f0e1d2c3-0000-4000-8000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPDFService_Filename(t *testing.T) {
	svc := &pdfService{}
	got := svc.Filename("3c1d2e4f-0000-4000-8000-000000000001")
	if got != "instruks-3c1d2e4f000040008000000000000001.pdf" {
		t.Errorf("unexpected filename: %q", got)
	}
}

func TestMarkdownService_Export(t *testing.T) {
	repo := newMockInstruksRepo()
	row := seedVersion(t, repo, "<h1>Hand Hygiene</h1><p>Wash <b>thoroughly</b>.</p>")

	svc := NewMarkdownService(repo, sanitizer.New(), slog.Default())

	out, err := svc.Export(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(out, "# Hand Hygiene") {
		t.Errorf("heading not converted: %q", out)
	}
	if !strings.Contains(out, "**thoroughly**") {
		t.Errorf("bold not converted: %q", out)
	}
}

func TestMarkdownService_Export_MissingVersion(t *testing.T) {
	repo := newMockInstruksRepo()
	svc := NewMarkdownService(repo, sanitizer.New(), slog.Default())

	_, err := svc.Export(context.Background(), "f0e1d2c3-0000-4000-8000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
