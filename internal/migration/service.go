// Package migration implementa a migração pontual do banco de
// documentos de origem para o banco relacional.
//
// A execução percorre as coleções em ordem de dependência (usuários,
// depois denúncias com seus comentários aninhados), reconciliando cada
// documento contra o estado relacional existente. Falhas individuais
// de documento são registradas e não interrompem a execução; a perda
// da origem ou do destino encerra a execução com falha. Reexecuções
// são idempotentes: o mesmo id externo resolve para o mesmo registro
// interno e o merge converge em vez de duplicar.
package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/metrics"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
	"github.com/cidade-integra/cidade-integra-backend/internal/source"
)

// Nomes das coleções na origem.
const (
	collUsers    = "users"
	collReports  = "reports"
	collComments = "comments"
)

// Service orquestra uma execução da migração.
// O mapa id externo → id interno de usuários vive exatamente uma
// execução: é criado no início, populado na fase de usuários e
// consumido nas fases seguintes.
type Service struct {
	src      source.Store
	users    repository.UserRepository
	reports  repository.ReportRepository
	comments repository.CommentRepository
	audit    *Auditor
	metrics  metrics.MigrationCollector
}

// NewService cria o serviço de migração.
func NewService(
	src source.Store,
	users repository.UserRepository,
	reports repository.ReportRepository,
	comments repository.CommentRepository,
	audit *Auditor,
	collector metrics.MigrationCollector,
) *Service {
	return &Service{
		src:      src,
		users:    users,
		reports:  reports,
		comments: comments,
		audit:    audit,
		metrics:  collector,
	}
}

// Run executa a migração completa, síncrona, do início ao fim.
// Retorna o resultado agregado em caso de sucesso; em caso de falha
// irrecuperável (origem ou destino indisponível), a execução para na
// fase corrente e o erro é propagado ao chamador. O estado parcial já
// persistido é seguro: cada documento é sua própria transação e uma
// nova execução converge.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	slog.Info("iniciando processo de migração")
	s.audit.Info(ctx, "Iniciando processo de migração...")

	outcome := &Outcome{}
	userMap := make(map[string]string)

	if err := s.migrateUsers(ctx, userMap, outcome); err != nil {
		return nil, s.fail(ctx, start, err)
	}

	if err := s.migrateReports(ctx, userMap, outcome); err != nil {
		return nil, s.fail(ctx, start, err)
	}

	slog.Info("migração concluída com sucesso",
		slog.Int("users_created", outcome.Users.Created),
		slog.Int("reports_created", outcome.Reports.Created),
		slog.Int("comments_created", outcome.Comments.Created),
	)
	s.audit.Info(ctx, "Migração concluída com sucesso: "+outcome.Summary())
	s.metrics.RecordMigrationRun(true, time.Since(start))

	return outcome, nil
}

// fail registra a falha irrecuperável e devolve o erro ao chamador.
func (s *Service) fail(ctx context.Context, start time.Time, err error) error {
	slog.Error("erro durante o processo de migração", slog.String("error", err.Error()))
	s.audit.Error(ctx, "Erro durante o processo de migração.", err)
	s.metrics.RecordMigrationRun(false, time.Since(start))
	return err
}

// migrateUsers reconcilia a coleção de usuários e popula o mapa de
// ids consumido pelas fases seguintes.
func (s *Service) migrateUsers(ctx context.Context, userMap map[string]string, outcome *Outcome) error {
	s.audit.Info(ctx, "Migrando coleção: users...")

	docs, err := s.src.ListDocuments(ctx, collUsers)
	if err != nil {
		return fmt.Errorf("failed to list users collection: %w", err)
	}

	for _, doc := range docs {
		if err := s.reconcileUser(ctx, doc, userMap, &outcome.Users); err != nil {
			// Falha de um documento não interrompe a coleção.
			outcome.Users.Skipped++
			s.metrics.RecordMigrationDocument(collUsers, metrics.ResultSkipped)
			slog.Error("erro ao migrar usuário",
				slog.String("external_id", doc.ID),
				slog.String("error", err.Error()),
			)
			s.audit.Error(ctx, fmt.Sprintf("Erro ao migrar usuário %s", doc.ID), err)
		}
	}

	s.audit.Info(ctx, fmt.Sprintf(
		"Migração de usuários concluída: %d criados, %d atualizados, %d ignorados.",
		outcome.Users.Created, outcome.Users.Updated, outcome.Users.Skipped,
	))
	return nil
}

// migrateReports reconcilia a coleção de denúncias e, para cada
// denúncia persistida, a sua sub-coleção de comentários. Denúncias
// ignoradas não têm os comentários processados.
func (s *Service) migrateReports(ctx context.Context, userMap map[string]string, outcome *Outcome) error {
	s.audit.Info(ctx, "Migrando coleção: reports...")

	docs, err := s.src.ListDocuments(ctx, collReports)
	if err != nil {
		return fmt.Errorf("failed to list reports collection: %w", err)
	}

	for _, doc := range docs {
		report, err := s.reconcileReport(ctx, doc, userMap, &outcome.Reports)
		if err != nil {
			outcome.Reports.Skipped++
			s.metrics.RecordMigrationDocument(collReports, metrics.ResultSkipped)
			slog.Error("erro ao migrar denúncia",
				slog.String("external_id", doc.ID),
				slog.String("error", err.Error()),
			)
			s.audit.Error(ctx, fmt.Sprintf("Erro ao migrar denúncia %s", doc.ID), err)
			continue
		}
		if report == nil {
			continue
		}

		if err := s.migrateComments(ctx, doc.ID, report.ID, userMap, outcome); err != nil {
			// A sub-coleção inacessível conta como falha da denúncia,
			// não da execução.
			slog.Error("erro ao migrar comentários da denúncia",
				slog.String("external_id", doc.ID),
				slog.String("error", err.Error()),
			)
			s.audit.Error(ctx, fmt.Sprintf("Erro ao migrar comentários da denúncia %s", doc.ID), err)
		}
	}

	s.audit.Info(ctx, fmt.Sprintf(
		"Migração de denúncias concluída: %d criadas, %d atualizadas, %d ignoradas, %d comentários criados.",
		outcome.Reports.Created, outcome.Reports.Updated, outcome.Reports.Skipped,
		outcome.Comments.Created,
	))
	return nil
}

// migrateComments reconcilia a sub-coleção de comentários de uma
// denúncia persistida.
func (s *Service) migrateComments(ctx context.Context, reportExternalID, reportID string, userMap map[string]string, outcome *Outcome) error {
	docs, err := s.src.ListSubDocuments(ctx, reportExternalID, collComments)
	if err != nil {
		return fmt.Errorf("failed to list comments of report %s: %w", reportExternalID, err)
	}

	for _, doc := range docs {
		if err := s.reconcileComment(ctx, doc, reportID, userMap, &outcome.Comments); err != nil {
			outcome.Comments.Skipped++
			s.metrics.RecordMigrationDocument(collComments, metrics.ResultSkipped)
			slog.Error("erro ao migrar comentário",
				slog.String("external_id", doc.ID),
				slog.String("error", err.Error()),
			)
			s.audit.Error(ctx, fmt.Sprintf("Erro ao migrar comentário %s", doc.ID), err)
		}
	}

	return nil
}
