package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// ReportServiceInterface é a interface de serviço exigida pelo handler
// de denúncias.
type ReportServiceInterface interface {
	ListPending(ctx context.Context) ([]*model.Report, error)
	GetByID(ctx context.Context, id string) (*model.Report, error)
	Create(ctx context.Context, report *model.Report) (*model.Report, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Report, error)
}

// ReportHandler é o handler HTTP de denúncias.
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler cria um ReportHandler.
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// locationPayload transporta a localização de uma denúncia.
type locationPayload struct {
	Address    string  `json:"address,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// createReportRequest é o corpo da requisição de registro de denúncia.
type createReportRequest struct {
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	IsAnonymous bool             `json:"is_anonymous"`
	ImageURL    string           `json:"image_url"`
	Location    *locationPayload `json:"location"`
}

// updateStatusRequest é o corpo da requisição de mudança de status.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// reportResponse é a resposta da API com os dados de uma denúncia.
type reportResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	IsAnonymous bool             `json:"is_anonymous"`
	Status      string           `json:"status"`
	ImageURL    string           `json:"image_url,omitempty"`
	Location    *locationPayload `json:"location,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
}

func toReportResponse(rep *model.Report) reportResponse {
	resp := reportResponse{
		ID:          rep.ID,
		UserID:      rep.UserID,
		Title:       rep.Title,
		Category:    rep.Category,
		Description: rep.Description,
		IsAnonymous: rep.IsAnonymous,
		Status:      rep.Status,
		ImageURL:    rep.ImageURL,
		CreatedAt:   rep.CreatedAt,
		UpdatedAt:   rep.UpdatedAt,
		ResolvedAt:  rep.ResolvedAt,
	}
	if rep.Location != nil {
		resp.Location = &locationPayload{
			Address:    rep.Location.Address,
			PostalCode: rep.Location.PostalCode,
			Latitude:   rep.Location.Latitude,
			Longitude:  rep.Location.Longitude,
		}
	}
	return resp
}

// ListPending retorna as denúncias ainda não resolvidas nem
// rejeitadas.
// GET /api/reports/pending
func (h *ReportHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]reportResponse, len(reports))
	for i, rep := range reports {
		resp[i] = toReportResponse(rep)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get retorna uma denúncia pelo id.
// GET /api/reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

// Create registra uma nova denúncia.
// POST /api/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	report := &model.Report{
		UserID:      req.UserID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		IsAnonymous: req.IsAnonymous,
		ImageURL:    req.ImageURL,
	}
	if req.Location != nil {
		report.Location = &model.ReportLocation{
			Address:    req.Location.Address,
			PostalCode: req.Location.PostalCode,
			Latitude:   req.Location.Latitude,
			Longitude:  req.Location.Longitude,
		}
	}

	created, err := h.service.Create(r.Context(), report)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReportResponse(created))
}

// UpdateStatus altera o status de uma denúncia.
// PATCH /api/reports/{id}/status
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	report, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}
