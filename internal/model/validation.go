package model

import (
	"fmt"
	"time"
)

// ValidationError representa a primeira regra de domínio violada por um
// registro. A validação é fail-fast: apenas a primeira violação é
// reportada.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implementa a interface error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// clockSkewTolerance é a tolerância aceita para datas "no futuro"
// causadas por desvio de relógio entre a origem e este servidor.
const clockSkewTolerance = 5 * time.Minute

// futureLimit retorna o instante máximo aceito para datas de criação.
func futureLimit(now time.Time) time.Time {
	return now.Add(clockSkewTolerance)
}
