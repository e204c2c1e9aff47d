package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

// IPRateLimiter хранит отдельный limiter на каждый IP.
// Limiter неактивного IP удаляется через idleTTL.
type IPRateLimiter struct {
	limiters *gocache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
	idleTTL  time.Duration
}

// NewIPRateLimiter создает limiter: r запросов в секунду, b - размер всплеска
func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *IPRateLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &IPRateLimiter{
		limiters: gocache.New(idleTTL, 2*idleTTL),
		r:        r,
		b:        b,
		idleTTL:  idleTTL,
	}
}

// GetLimiter возвращает limiter для IP, создавая его при первом обращении
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if cached, ok := i.limiters.Get(ip); ok {
		limiter := cached.(*rate.Limiter)
		// Продлеваем жизнь активного limiter
		i.limiters.Set(ip, limiter, i.idleTTL)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.limiters.Set(ip, limiter, i.idleTTL)
	return limiter
}

// Allow сообщает, можно ли обработать еще один запрос с этого IP
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.GetLimiter(ip).Allow()
}

// RateLimit ограничивает частоту запросов с одного IP
func RateLimit(limiter *IPRateLimiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берет адрес из RemoteAddr.
// За прокси RemoteAddr подменяется handlers.ProxyHeaders.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
