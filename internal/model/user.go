// Package model define o modelo de domínio e suas regras de validação.
package model

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// User representa um cidadão cadastrado na plataforma.
// Email é o identificador de negócio (único, minúsculo); ExternalID é o
// identificador atribuído pelo banco de documentos de origem, quando o
// registro veio de uma migração.
type User struct {
	ID          string
	ExternalID  string
	DisplayName string
	Email       string
	PhotoURL    string
	Region      string
	Role        string
	Status      string
	Score       int
	ReportCount int
	Verified    bool
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// Valores padrão atribuídos a usuários sem papel ou situação definidos.
const (
	UserRoleDefault   = "user"
	UserStatusDefault = "active"
)

// emailPattern aceita o formato geral local@dominio.tld.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail normaliza um e-mail para comparação e armazenamento.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate verifica as invariantes de domínio do usuário.
// Retorna nil quando o registro é válido ou a primeira violação
// encontrada.
func (u *User) Validate(now time.Time) *ValidationError {
	if strings.TrimSpace(u.DisplayName) == "" {
		return &ValidationError{Field: "displayName", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(u.DisplayName) > 100 {
		return &ValidationError{Field: "displayName", Reason: "deve ter no máximo 100 caracteres"}
	}
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(u.Email) > 150 {
		return &ValidationError{Field: "email", Reason: "deve ter no máximo 150 caracteres"}
	}
	if !emailPattern.MatchString(u.Email) {
		return &ValidationError{Field: "email", Reason: "deve ser um e-mail válido"}
	}
	if utf8.RuneCountInString(u.PhotoURL) > 255 {
		return &ValidationError{Field: "photoUrl", Reason: "deve ter no máximo 255 caracteres"}
	}
	if utf8.RuneCountInString(u.Region) > 100 {
		return &ValidationError{Field: "region", Reason: "deve ter no máximo 100 caracteres"}
	}
	if strings.TrimSpace(u.Role) == "" {
		return &ValidationError{Field: "role", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(u.Role) > 50 {
		return &ValidationError{Field: "role", Reason: "deve ter no máximo 50 caracteres"}
	}
	if strings.TrimSpace(u.Status) == "" {
		return &ValidationError{Field: "status", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(u.Status) > 50 {
		return &ValidationError{Field: "status", Reason: "deve ter no máximo 50 caracteres"}
	}
	if u.Score < 0 {
		return &ValidationError{Field: "score", Reason: "não pode ser negativo"}
	}
	if u.ReportCount < 0 {
		return &ValidationError{Field: "reportCount", Reason: "não pode ser negativo"}
	}
	if u.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "é obrigatório"}
	}
	if u.CreatedAt.After(futureLimit(now)) {
		return &ValidationError{Field: "createdAt", Reason: "não pode estar no futuro"}
	}
	return nil
}
