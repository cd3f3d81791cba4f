package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

type mockCommentService struct {
	getByIDFn      func(ctx context.Context, id string) (*model.Comment, error)
	listByReportFn func(ctx context.Context, reportID string) ([]*model.Comment, error)
	createFn       func(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	updateFn       func(ctx context.Context, id, message string) (*model.Comment, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockCommentService) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockCommentService) ListByReport(ctx context.Context, reportID string) ([]*model.Comment, error) {
	return m.listByReportFn(ctx, reportID)
}
func (m *mockCommentService) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	return m.createFn(ctx, comment)
}
func (m *mockCommentService) Update(ctx context.Context, id, message string) (*model.Comment, error) {
	return m.updateFn(ctx, id, message)
}
func (m *mockCommentService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func commentRoutes(svc CommentServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewCommentHandler(svc)
	r.Post("/api/comments", h.Create)
	r.Get("/api/comments/{id}", h.Get)
	r.Put("/api/comments/{id}", h.Update)
	r.Delete("/api/comments/{id}", h.Delete)
	r.Get("/api/reports/{id}/comments", h.ListByReport)
	return r
}

func sampleComment() *model.Comment {
	return &model.Comment{
		ID:          "c-1",
		ReportID:    "r-1",
		AuthorID:    "u-1",
		AvatarColor: "#3366ff",
		Message:     "Confirmo a situação.",
		Role:        "user",
		CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestCommentHandler_ListByReport verifica a listagem aninhada sob a
// denúncia.
func TestCommentHandler_ListByReport(t *testing.T) {
	svc := &mockCommentService{
		listByReportFn: func(ctx context.Context, reportID string) ([]*model.Comment, error) {
			if reportID != "r-1" {
				t.Errorf("reportID = %q, want r-1", reportID)
			}
			return []*model.Comment{sampleComment()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/r-1/comments", nil)
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []commentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "c-1" {
		t.Errorf("response = %+v, want one comment c-1", resp)
	}
}

// TestCommentHandler_ListByReport_ReportNotFound verifica o 404 para
// denúncia inexistente.
func TestCommentHandler_ListByReport_ReportNotFound(t *testing.T) {
	svc := &mockCommentService{
		listByReportFn: func(ctx context.Context, reportID string) ([]*model.Comment, error) {
			return nil, model.NewReportNotFoundError(reportID)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/ghost/comments", nil)
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// TestCommentHandler_Create verifica a criação com 201.
func TestCommentHandler_Create(t *testing.T) {
	svc := &mockCommentService{
		createFn: func(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
			created := *comment
			created.ID = "c-new"
			return &created, nil
		},
	}

	body := `{"report_id":"r-1","author_id":"u-1","avatar_color":"#ff0000","message":"Novo comentário.","role":"user"}`
	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp commentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "c-new" {
		t.Errorf("id = %q, want c-new", resp.ID)
	}
}

// TestCommentHandler_Update verifica a edição da mensagem.
func TestCommentHandler_Update(t *testing.T) {
	svc := &mockCommentService{
		updateFn: func(ctx context.Context, id, message string) (*model.Comment, error) {
			if id != "c-1" {
				t.Errorf("id = %q, want c-1", id)
			}
			c := sampleComment()
			c.Message = message
			return c, nil
		},
	}

	body := `{"message":"Mensagem corrigida."}`
	req := httptest.NewRequest(http.MethodPut, "/api/comments/c-1", strings.NewReader(body))
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp commentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Mensagem corrigida." {
		t.Errorf("message = %q, want updated text", resp.Message)
	}
}

// TestCommentHandler_Delete verifica a remoção com 204.
func TestCommentHandler_Delete(t *testing.T) {
	svc := &mockCommentService{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "c-1" {
				t.Errorf("id = %q, want c-1", id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/c-1", nil)
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

// TestCommentHandler_Delete_NotFound verifica o 404 na remoção de
// comentário inexistente.
func TestCommentHandler_Delete_NotFound(t *testing.T) {
	svc := &mockCommentService{
		deleteFn: func(ctx context.Context, id string) error {
			return model.NewCommentNotFoundError(id)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/ghost", nil)
	w := httptest.NewRecorder()
	commentRoutes(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
