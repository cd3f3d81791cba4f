package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig guarda a configuração do limite de requisições.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // taxa geral da API (req/seg)
	GeneralBurst    int           // tamanho do burst geral
	CleanupInterval time.Duration // intervalo de limpeza de entradas expiradas
}

// DefaultRateLimiterConfig retorna a configuração padrão: 120 req/min
// por cliente.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0),
		GeneralBurst:    120,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter guarda o limitador de um cliente e o último acesso.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter gerencia o limite de requisições por cliente. Sem
// sessões na API, o cliente é identificado pelo endereço IP de origem.
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter cria um novo RateLimiter e inicia a limpeza
// periódica de entradas expiradas em segundo plano.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop encerra a goroutine de limpeza.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware retorna o middleware de limite geral da API.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			limiter := rl.getOrCreateLimiter(client)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("client", client),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LimiterCount retorna o número de limitadores ativos. Para testes e
// métricas.
func (rl *RateLimiter) LimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// getOrCreateLimiter obtém ou cria o limitador do cliente.
func (rl *RateLimiter) getOrCreateLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, exists := rl.limiters[client]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.config.GeneralRate, rl.config.GeneralBurst)
	rl.limiters[client] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop remove periodicamente as entradas expiradas.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup remove entradas sem acesso há mais de duas vezes o intervalo
// de limpeza.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()

	rl.mu.Lock()
	for client, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, client)
		}
	}
	rl.mu.Unlock()
}

// clientAddr extrai o endereço do cliente sem a porta.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse escreve a resposta 429 Too Many Requests com
// o cabeçalho Retry-After estimando a reposição de um token.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     "rate_limit_exceeded",
		"message":  "Muitas requisições. Tente novamente em instantes.",
		"category": "system",
		"action":   "Aguarde o tempo indicado e tente novamente.",
	})
}
