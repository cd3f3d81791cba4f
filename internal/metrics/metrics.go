// Package metrics provê a coleta e a publicação de métricas
// Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados possíveis de um documento durante a migração.
const (
	ResultCreated = "created"
	ResultUpdated = "updated"
	ResultSkipped = "skipped"
)

// MigrationCollector é a interface de coleta usada pelo serviço de
// migração.
type MigrationCollector interface {
	RecordMigrationRun(success bool, duration time.Duration)
	RecordMigrationDocument(collection, result string)
}

// Collector coleta métricas Prometheus da aplicação.
type Collector struct {
	httpStatus        *prometheus.CounterVec
	migrationRuns     prometheus.Counter
	migrationFailures prometheus.Counter
	migrationDocs     *prometheus.CounterVec
	migrationDuration prometheus.Histogram
}

// NewCollector cria um Collector e registra as métricas no registry
// informado.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cidade_integra_http_status_total",
			Help: "Total de respostas HTTP por status",
		}, []string{"status_code"}),
		migrationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cidade_integra_migration_runs_total",
			Help: "Total de execuções da migração",
		}),
		migrationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cidade_integra_migration_failures_total",
			Help: "Total de execuções da migração que falharam",
		}),
		migrationDocs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cidade_integra_migration_documents_total",
			Help: "Total de documentos migrados por coleção e resultado",
		}, []string{"collection", "result"}),
		migrationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cidade_integra_migration_duration_seconds",
			Help:    "Duração das execuções da migração (segundos)",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.migrationRuns,
		c.migrationFailures,
		c.migrationDocs,
		c.migrationDuration,
	)

	return c
}

// RecordHTTPStatus registra o status de uma resposta HTTP.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordMigrationRun registra a conclusão de uma execução da migração.
func (c *Collector) RecordMigrationRun(success bool, duration time.Duration) {
	c.migrationRuns.Inc()
	if !success {
		c.migrationFailures.Inc()
	}
	c.migrationDuration.Observe(duration.Seconds())
}

// RecordMigrationDocument registra o resultado de um documento
// migrado.
func (c *Collector) RecordMigrationDocument(collection, result string) {
	c.migrationDocs.WithLabelValues(collection, result).Inc()
}

// Handler retorna o handler HTTP para o scrape do Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MigrationCollector = (*Collector)(nil)
