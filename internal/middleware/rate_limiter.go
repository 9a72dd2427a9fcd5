package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/razziiel/tcgnoa/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Sliding-window per-IP limiters. Two instances: a tight one for login
// attempts and a looser one for the public storefront endpoints, which take
// unauthenticated traffic spikes during lives.

type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type rateLimiter struct {
	entries map[string]*rateEntry
	mu      sync.Mutex
	limit   int
	window  time.Duration
	mensaje string
}

func newRateLimiter(limit int, window time.Duration, mensaje string) *rateLimiter {
	return &rateLimiter{
		entries: make(map[string]*rateEntry),
		limit:   limit,
		window:  window,
		mensaje: mensaje,
	}
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		entry, exists := rl.entries[ip]
		if !exists {
			entry = &rateEntry{}
			rl.entries[ip] = entry
		}
		rl.mu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}

		entry.count++
		if entry.count > rl.limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.mensaje))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) purge(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	purged := 0
	for ip, entry := range rl.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

var (
	loginLimiter = newRateLimiter(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
	publicLimiter = newRateLimiter(300, time.Minute,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc { return loginLimiter.middleware() }

// PublicRateLimiter protects the unauthenticated live endpoints
// (catalogo, claim, oferta, sorteos) from abuse.
func PublicRateLimiter() gin.HandlerFunc { return publicLimiter.middleware() }

// Periodically drop expired entries so IPs that never return don't
// accumulate forever.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purged := loginLimiter.purge(now) + publicLimiter.purge(now)
			if purged > 0 {
				log.Debug().Int("purged", purged).Msg("rate limiter maps purged")
			}
		}
	}()
}
