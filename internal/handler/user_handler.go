package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cidade-integra/cidade-integra-backend/internal/middleware"
	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// UserServiceInterface é a interface de serviço exigida pelo handler
// de usuários.
type UserServiceInterface interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// UserHandler é o handler HTTP de usuários.
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler cria um UserHandler.
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// createUserRequest é o corpo da requisição de cadastro de usuário.
type createUserRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
	Region      string `json:"region"`
	Role        string `json:"role"`
}

// userResponse é a resposta da API com os dados de um usuário.
type userResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Region      string    `json:"region,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Score       int       `json:"score"`
	ReportCount int       `json:"report_count"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
		Region:      u.Region,
		Role:        u.Role,
		Status:      u.Status,
		Score:       u.Score,
		ReportCount: u.ReportCount,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// List retorna todos os usuários.
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get retorna um usuário pelo id.
// GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// GetByEmail retorna um usuário pelo e-mail.
// GET /api/users/by-email?email=
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("o parâmetro email é obrigatório"))
		return
	}

	user, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Create cadastra um novo usuário.
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	user := &model.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
		Region:      req.Region,
		Role:        req.Role,
	}

	created, err := h.service.Create(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}
