package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, gatherer prometheus.Gatherer) string {
	t.Helper()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(gatherer).ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	return string(body)
}

// TestCollector_RecordHTTPStatus verifica o contador de status HTTP.
func TestCollector_RecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	body := scrape(t, reg)
	if !strings.Contains(body, `cidade_integra_http_status_total{status_code="200"} 2`) {
		t.Errorf("metrics output missing 200 counter:\n%s", body)
	}
	if !strings.Contains(body, `cidade_integra_http_status_total{status_code="404"} 1`) {
		t.Errorf("metrics output missing 404 counter:\n%s", body)
	}
}

// TestCollector_RecordMigrationRun verifica os contadores de execução
// da migração.
func TestCollector_RecordMigrationRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMigrationRun(true, 2*time.Second)
	c.RecordMigrationRun(false, time.Second)

	body := scrape(t, reg)
	if !strings.Contains(body, "cidade_integra_migration_runs_total 2") {
		t.Errorf("metrics output missing runs counter:\n%s", body)
	}
	if !strings.Contains(body, "cidade_integra_migration_failures_total 1") {
		t.Errorf("metrics output missing failures counter:\n%s", body)
	}
}

// TestCollector_RecordMigrationDocument verifica o contador por coleção
// e resultado.
func TestCollector_RecordMigrationDocument(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMigrationDocument("users", ResultCreated)
	c.RecordMigrationDocument("users", ResultCreated)
	c.RecordMigrationDocument("reports", ResultSkipped)

	body := scrape(t, reg)
	if !strings.Contains(body, `cidade_integra_migration_documents_total{collection="users",result="created"} 2`) {
		t.Errorf("metrics output missing users counter:\n%s", body)
	}
	if !strings.Contains(body, `cidade_integra_migration_documents_total{collection="reports",result="skipped"} 1`) {
		t.Errorf("metrics output missing reports counter:\n%s", body)
	}
}
