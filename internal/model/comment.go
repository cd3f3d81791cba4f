package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Comment representa um comentário feito em uma denúncia.
// Comentários são append-only: não há fluxo de merge na migração.
type Comment struct {
	ID          string
	ExternalID  string
	ReportID    string
	AuthorID    string
	AvatarColor string
	Message     string
	Role        string
	CreatedAt   time.Time
}

// Validate verifica as invariantes de domínio do comentário.
// AuthorID é obrigatório: comentários cujo autor não pôde ser
// resolvido são rejeitados em vez de persistidos com referência vazia.
func (c *Comment) Validate(now time.Time) *ValidationError {
	if strings.TrimSpace(c.ReportID) == "" {
		return &ValidationError{Field: "reportId", Reason: "é obrigatório"}
	}
	if strings.TrimSpace(c.AuthorID) == "" {
		return &ValidationError{Field: "authorId", Reason: "é obrigatório"}
	}
	if strings.TrimSpace(c.AvatarColor) == "" {
		return &ValidationError{Field: "avatarColor", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(c.AvatarColor) > 50 {
		return &ValidationError{Field: "avatarColor", Reason: "deve ter no máximo 50 caracteres"}
	}
	if strings.TrimSpace(c.Message) == "" {
		return &ValidationError{Field: "message", Reason: "é obrigatória"}
	}
	if utf8.RuneCountInString(c.Message) > 500 {
		return &ValidationError{Field: "message", Reason: "deve ter no máximo 500 caracteres"}
	}
	if strings.TrimSpace(c.Role) == "" {
		return &ValidationError{Field: "role", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(c.Role) > 50 {
		return &ValidationError{Field: "role", Reason: "deve ter no máximo 50 caracteres"}
	}
	if c.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "é obrigatório"}
	}
	if c.CreatedAt.After(futureLimit(now)) {
		return &ValidationError{Field: "createdAt", Reason: "não pode estar no futuro"}
	}
	return nil
}
