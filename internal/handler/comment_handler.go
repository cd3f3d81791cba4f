package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// CommentServiceInterface é a interface de serviço exigida pelo
// handler de comentários.
type CommentServiceInterface interface {
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByReport(ctx context.Context, reportID string) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Update(ctx context.Context, id, message string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentHandler é o handler HTTP de comentários.
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler cria um CommentHandler.
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

// createCommentRequest é o corpo da requisição de criação de
// comentário.
type createCommentRequest struct {
	ReportID    string `json:"report_id"`
	AuthorID    string `json:"author_id"`
	AvatarColor string `json:"avatar_color"`
	Message     string `json:"message"`
	Role        string `json:"role"`
}

// updateCommentRequest é o corpo da requisição de edição de
// comentário.
type updateCommentRequest struct {
	Message string `json:"message"`
}

// commentResponse é a resposta da API com os dados de um comentário.
type commentResponse struct {
	ID          string    `json:"id"`
	ReportID    string    `json:"report_id"`
	AuthorID    string    `json:"author_id"`
	AvatarColor string    `json:"avatar_color"`
	Message     string    `json:"message"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:          c.ID,
		ReportID:    c.ReportID,
		AuthorID:    c.AuthorID,
		AvatarColor: c.AvatarColor,
		Message:     c.Message,
		Role:        c.Role,
		CreatedAt:   c.CreatedAt,
	}
}

// Get retorna um comentário pelo id.
// GET /api/comments/{id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// ListByReport retorna os comentários de uma denúncia.
// GET /api/reports/{id}/comments
func (h *CommentHandler) ListByReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")

	comments, err := h.service.ListByReport(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]commentResponse, len(comments))
	for i, c := range comments {
		resp[i] = toCommentResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create registra um comentário em uma denúncia.
// POST /api/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	comment := &model.Comment{
		ReportID:    req.ReportID,
		AuthorID:    req.AuthorID,
		AvatarColor: req.AvatarColor,
		Message:     req.Message,
		Role:        req.Role,
	}

	created, err := h.service.Create(r.Context(), comment)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(created))
}

// Update altera a mensagem de um comentário.
// PUT /api/comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	comment, err := h.service.Update(r.Context(), id, req.Message)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete remove um comentário.
// DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
