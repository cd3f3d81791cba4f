package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// --- mocks ---

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	listFn        func(ctx context.Context) ([]*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	return m.listFn(ctx)
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return nil
}

// --- testes ---

// TestService_GetByID_NotFound verifica o erro de domínio para id
// inexistente.
func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	})

	_, err := svc.GetByID(context.Background(), "ghost")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("err = %v, want USER_NOT_FOUND", err)
	}
}

// TestService_GetByEmail_Normalizes verifica a normalização do e-mail
// antes da busca.
func TestService_GetByEmail_Normalizes(t *testing.T) {
	var queried string
	svc := NewService(&mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			queried = email
			return &model.User{ID: "u-1", Email: email}, nil
		},
	})

	if _, err := svc.GetByEmail(context.Background(), "  Ana@Example.COM "); err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if queried != "ana@example.com" {
		t.Errorf("queried email = %q, want normalized", queried)
	}
}

// TestService_Create verifica os defaults e a geração do id interno.
func TestService_Create(t *testing.T) {
	var persisted *model.User
	svc := NewService(&mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			persisted = user
			return nil
		},
	})

	created, err := svc.Create(context.Background(), &model.User{
		DisplayName: "Ana Souza",
		Email:       "Ana@Example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Error("created user should receive an internal id")
	}
	if created.Email != "ana@example.com" {
		t.Errorf("Email = %q, want normalized", created.Email)
	}
	if created.Role != model.UserRoleDefault || created.Status != model.UserStatusDefault {
		t.Errorf("defaults not applied: role=%q status=%q", created.Role, created.Status)
	}
	if created.CreatedAt.IsZero() || created.LastLoginAt.IsZero() {
		t.Error("timestamps should be initialized")
	}
	if persisted == nil {
		t.Fatal("repository Create should be called")
	}
}

// TestService_Create_EmailInUse verifica a recusa de e-mail já
// cadastrado.
func TestService_Create_EmailInUse(t *testing.T) {
	svc := NewService(&mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-existing", Email: email}, nil
		},
		createFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("Create should not be called for a duplicate email")
			return nil
		},
	})

	_, err := svc.Create(context.Background(), &model.User{
		DisplayName: "Ana Souza",
		Email:       "ana@example.com",
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeEmailInUse {
		t.Errorf("err = %v, want EMAIL_IN_USE", err)
	}
}

// TestService_Create_Invalid verifica a rejeição por validação de
// domínio.
func TestService_Create_Invalid(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.Create(context.Background(), &model.User{
		DisplayName: "Ana Souza",
		Email:       "nao-e-um-email",
		CreatedAt:   time.Now(),
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidationFailed {
		t.Errorf("err = %v, want VALIDATION_FAILED", err)
	}
}
