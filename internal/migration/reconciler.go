package migration

import (
	"fmt"
	"time"

	"context"

	"github.com/cidade-integra/cidade-integra-backend/internal/metrics"
	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/source"
	"github.com/google/uuid"
)

// Reconciliação por documento: decide entre criar e atualizar a partir
// do id externo (e do e-mail, para usuários), aplicando o merge do
// mapper e a validação de domínio. Falhas retornadas aqui são tratadas
// pelo laço da coleção como falha daquele documento, nunca da execução.

// reconcileUser processa um documento da coleção de usuários.
// Registra o mapeamento id externo → id interno consumido pelas fases
// seguintes.
func (s *Service) reconcileUser(ctx context.Context, doc source.Document, userMap map[string]string, out *CollectionOutcome) error {
	now := time.Now()

	existing, err := s.users.FindByExternalID(ctx, doc.ID)
	if err != nil {
		return err
	}

	// Fallback por e-mail: evita contas duplicadas quando o id externo
	// mudou entre execuções.
	if existing == nil {
		if email := model.NormalizeEmail(doc.String("email", "")); email != "" {
			existing, err = s.users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
		}
	}

	user := MapUser(doc, existing, now)

	if verr := user.Validate(now); verr != nil {
		out.Skipped++
		s.metrics.RecordMigrationDocument(collUsers, metrics.ResultSkipped)
		s.audit.Warn(ctx, fmt.Sprintf("Usuário %s rejeitado pela validação: %s", doc.ID, verr))
		return nil
	}

	if existing == nil {
		user.ID = uuid.New().String()
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		out.Created++
		s.metrics.RecordMigrationDocument(collUsers, metrics.ResultCreated)
		s.audit.Info(ctx, fmt.Sprintf("Usuário criado: %s", user.Email))
	} else {
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		out.Updated++
		s.metrics.RecordMigrationDocument(collUsers, metrics.ResultUpdated)
		s.audit.Info(ctx, fmt.Sprintf("Usuário atualizado: %s", user.Email))
	}

	userMap[doc.ID] = user.ID
	return nil
}

// reconcileReport processa um documento da coleção de denúncias.
// Retorna a denúncia persistida, ou nil quando o documento foi
// ignorado (autor não resolvido ou validação); nesse caso a
// sub-coleção de comentários não é processada.
func (s *Service) reconcileReport(ctx context.Context, doc source.Document, userMap map[string]string, out *CollectionOutcome) (*model.Report, error) {
	now := time.Now()

	ownerID, ok := userMap[doc.String("userId", "")]
	if !ok || ownerID == "" {
		out.Skipped++
		s.metrics.RecordMigrationDocument(collReports, metrics.ResultSkipped)
		s.audit.Warn(ctx, fmt.Sprintf("Usuário não encontrado para a denúncia %s", doc.ID))
		return nil, nil
	}

	existing, err := s.reports.FindByExternalID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	report := MapReport(doc, existing, ownerID, now)

	if verr := report.Validate(); verr != nil {
		out.Skipped++
		s.metrics.RecordMigrationDocument(collReports, metrics.ResultSkipped)
		s.audit.Warn(ctx, fmt.Sprintf("Denúncia %s rejeitada pela validação: %s", doc.ID, verr))
		return nil, nil
	}

	if existing == nil {
		report.ID = uuid.New().String()
		if err := s.reports.Create(ctx, report); err != nil {
			return nil, err
		}
		out.Created++
		s.metrics.RecordMigrationDocument(collReports, metrics.ResultCreated)
		s.audit.Info(ctx, fmt.Sprintf("Denúncia criada: %s", report.Title))
	} else {
		if err := s.reports.Update(ctx, report); err != nil {
			return nil, err
		}
		out.Updated++
		s.metrics.RecordMigrationDocument(collReports, metrics.ResultUpdated)
		s.audit.Info(ctx, fmt.Sprintf("Denúncia atualizada: %s", report.Title))
	}

	return report, nil
}

// reconcileComment processa um documento da sub-coleção de comentários
// de uma denúncia já persistida. Comentários são append-only: um
// comentário já migrado (mesmo id externo) é deixado intacto e contado
// como existente, o que mantém as reexecuções idempotentes.
func (s *Service) reconcileComment(ctx context.Context, doc source.Document, reportID string, userMap map[string]string, out *CollectionOutcome) error {
	now := time.Now()

	existing, err := s.comments.FindByExternalID(ctx, doc.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		out.Updated++
		s.metrics.RecordMigrationDocument(collComments, metrics.ResultUpdated)
		return nil
	}

	comment := MapComment(doc, reportID, userMap, now)

	if comment.AuthorID == "" {
		out.Skipped++
		s.metrics.RecordMigrationDocument(collComments, metrics.ResultSkipped)
		s.audit.Warn(ctx, fmt.Sprintf("Autor não encontrado para o comentário %s", doc.ID))
		return nil
	}

	if verr := comment.Validate(now); verr != nil {
		out.Skipped++
		s.metrics.RecordMigrationDocument(collComments, metrics.ResultSkipped)
		s.audit.Warn(ctx, fmt.Sprintf("Comentário %s rejeitado pela validação: %s", doc.ID, verr))
		return nil
	}

	comment.ID = uuid.New().String()
	if err := s.comments.Create(ctx, comment); err != nil {
		return err
	}
	out.Created++
	s.metrics.RecordMigrationDocument(collComments, metrics.ResultCreated)
	s.audit.Info(ctx, fmt.Sprintf("Comentário criado na denúncia %s", reportID))

	return nil
}
