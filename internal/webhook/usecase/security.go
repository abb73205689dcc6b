package usecase

import (
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"repo-pulse/internal/webhook"
)

const (
	maxRateLimitSources = 1000
	rateLimitSourceTTL  = 5 * time.Minute
)

// guard applies the source checks that run before signature verification.
type guard struct {
	restricted bool // an allow-list was configured, even if no entry parsed
	allowed    []string
	nets       []*net.IPNet
	limiter    *rateLimiter // nil when rate limiting is off
}

func newGuard(cfg webhook.SecurityConfig) *guard {
	g := &guard{}
	for _, entry := range cfg.AllowedIPs {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		g.restricted = true
		if strings.Contains(entry, "/") {
			if _, ipNet, err := net.ParseCIDR(entry); err == nil {
				g.nets = append(g.nets, ipNet)
			}
			continue
		}
		g.allowed = append(g.allowed, entry)
	}
	if cfg.RateLimitPerMin > 0 {
		g.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return g
}

// allowIP checks ip against the allow-list. An empty list allows everyone;
// a list whose entries all failed to parse allows no one.
func (g *guard) allowIP(ip string) bool {
	if !g.restricted {
		return true
	}

	for _, allowedIP := range g.allowed {
		if ip == allowedIP {
			return true
		}
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, ipNet := range g.nets {
		if ipNet.Contains(parsed) {
			return true
		}
	}
	return false
}

func (g *guard) allowRate(source string) bool {
	if g.limiter == nil {
		return true
	}
	return g.limiter.allow(source)
}

// rateLimiter keeps one token bucket per source, expiring idle sources.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxRateLimitSources, nil, rateLimitSourceTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0), // per second
		burst:    max(1, requestsPerMin/10),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
