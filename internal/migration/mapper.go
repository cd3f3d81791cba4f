package migration

import (
	"strings"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/source"
)

// Mapeamento puro de documentos brutos da origem para registros de
// domínio. Campos ausentes ou de tipo inesperado resolvem para
// defaults; nenhuma função deste arquivo faz I/O nem falha. Registros
// sem sentido são rejeitados depois, pela validação de domínio.
//
// Quando um registro existente é informado, seus valores servem de
// default: o documento de entrada vence, o valor existente permanece
// quando o campo está ausente na origem (semântica de merge das
// reexecuções).

// MapUser converte um documento da coleção de usuários em um candidato
// a model.User. O id interno não é atribuído aqui.
func MapUser(doc source.Document, existing *model.User, now time.Time) *model.User {
	def := model.User{
		Role:        model.UserRoleDefault,
		Status:      model.UserStatusDefault,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if existing != nil {
		def = *existing
	}

	user := &model.User{
		ID:          def.ID,
		ExternalID:  doc.ID,
		DisplayName: strings.TrimSpace(doc.String("displayName", def.DisplayName)),
		Email:       model.NormalizeEmail(doc.String("email", def.Email)),
		PhotoURL:    strings.TrimSpace(doc.String("photoURL", def.PhotoURL)),
		Region:      strings.TrimSpace(doc.String("region", def.Region)),
		Role:        strings.TrimSpace(doc.String("role", def.Role)),
		Status:      strings.TrimSpace(doc.String("status", def.Status)),
		Score:       doc.Int("score", def.Score),
		ReportCount: doc.Int("reportCount", def.ReportCount),
		Verified:    doc.Bool("verified", def.Verified),
		CreatedAt:   doc.Time("createdAt", def.CreatedAt),
		LastLoginAt: doc.Time("lastLoginAt", def.LastLoginAt),
	}

	return user
}

// MapReport converte um documento da coleção de denúncias em um
// candidato a model.Report, já vinculado ao id interno do autor.
func MapReport(doc source.Document, existing *model.Report, ownerID string, now time.Time) *model.Report {
	def := model.Report{
		Category:  "outros",
		Status:    model.ReportStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		def = *existing
	}

	report := &model.Report{
		ID:          def.ID,
		ExternalID:  doc.ID,
		UserID:      ownerID,
		Category:    strings.TrimSpace(doc.String("category", def.Category)),
		Title:       strings.TrimSpace(doc.String("title", def.Title)),
		Description: strings.TrimSpace(doc.String("description", def.Description)),
		IsAnonymous: doc.Bool("isAnonymous", def.IsAnonymous),
		Status:      strings.ToLower(strings.TrimSpace(doc.String("status", def.Status))),
		CreatedAt:   doc.Time("createdAt", def.CreatedAt),
		UpdatedAt:   doc.Time("updatedAt", def.UpdatedAt),
	}

	// A origem aceita múltiplas imagens; o destino guarda apenas a
	// primeira. Campo ausente mantém o valor existente.
	if _, ok := doc.Fields["imagemUrls"]; ok {
		report.ImageURL = doc.FirstString("imagemUrls")
	} else {
		report.ImageURL = def.ImageURL
	}

	if _, ok := doc.Fields["resolvedAt"]; ok {
		report.ResolvedAt = doc.OptionalTime("resolvedAt")
	} else {
		report.ResolvedAt = def.ResolvedAt
	}

	report.Location = mapLocation(doc, def.Location)

	return report
}

// mapLocation converte o sub-documento de endereço, preservando o
// endereço existente quando a origem não traz o campo.
func mapLocation(doc source.Document, existing *model.ReportLocation) *model.ReportLocation {
	locDoc, ok := doc.Map("location")
	if !ok {
		return existing
	}

	def := model.ReportLocation{}
	if existing != nil {
		def = *existing
	}

	return &model.ReportLocation{
		ID:         def.ID,
		ReportID:   def.ReportID,
		Address:    strings.TrimSpace(locDoc.String("address", def.Address)),
		PostalCode: strings.TrimSpace(locDoc.String("postalCode", def.PostalCode)),
		Latitude:   locDoc.Float("latitude", def.Latitude),
		Longitude:  locDoc.Float("longitude", def.Longitude),
	}
}

// MapComment converte um documento da sub-coleção de comentários em um
// candidato a model.Comment. O autor é resolvido pelo mapa de ids de
// usuários; quando o id externo do autor não tem mapeamento, AuthorID
// fica vazio e a validação rejeita o registro (nunca se fabrica um
// autor).
func MapComment(doc source.Document, reportID string, userMap map[string]string, now time.Time) *model.Comment {
	comment := &model.Comment{
		ExternalID:  doc.ID,
		ReportID:    reportID,
		AvatarColor: strings.TrimSpace(doc.String("avatarColor", "")),
		Message:     strings.TrimSpace(doc.String("message", "")),
		Role:        strings.TrimSpace(doc.String("role", "")),
		CreatedAt:   doc.Time("createdAt", now),
	}

	if authorExternalID := doc.String("authorId", ""); authorExternalID != "" {
		comment.AuthorID = userMap[authorExternalID]
	}

	return comment
}
