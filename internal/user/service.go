// Package user provê a lógica de domínio de usuários.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
)

// Service é a camada de serviço de usuários.
type Service struct {
	userRepo repository.UserRepository
}

// NewService cria uma nova instância de Service.
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
	}
}

// List retorna todos os usuários cadastrados.
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	return users, nil
}

// GetByID retorna o usuário com o id informado.
func (s *Service) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter usuário: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return user, nil
}

// GetByEmail retorna o usuário com o e-mail informado.
// O e-mail é normalizado (minúsculas, sem espaços) antes da busca.
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	normalized := model.NormalizeEmail(email)
	user, err := s.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter usuário por e-mail: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(normalized)
	}
	return user, nil
}

// Create cadastra um novo usuário.
// O e-mail não pode pertencer a outro usuário.
func (s *Service) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()

	user.Email = model.NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = model.UserRoleDefault
	}
	if user.Status == "" {
		user.Status = model.UserStatusDefault
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastLoginAt.IsZero() {
		user.LastLoginAt = now
	}

	if verr := user.Validate(now); verr != nil {
		return nil, model.NewValidationFailedError(verr)
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("falha ao verificar e-mail: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailInUseError(user.Email)
	}

	user.ID = uuid.New().String()
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("falha ao cadastrar usuário: %w", err)
	}

	slog.Info("usuário cadastrado",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}
