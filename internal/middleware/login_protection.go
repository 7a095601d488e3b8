// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Login protection limits.
const (
	loginRateLimit   = rate.Limit(1) // sustained attempts per second per IP
	loginRateBurst   = 5
	maxLoginFailures = 5
	lockoutDuration  = 15 * time.Minute
	limiterTTL       = 30 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type accountState struct {
	failures    int
	lockedUntil time.Time
}

// LoginProtector throttles login attempts per client IP and locks
// accounts after repeated failures.
type LoginProtector struct {
	mu       sync.Mutex
	ips      map[string]*ipLimiter
	accounts map[string]*accountState
	now      func() time.Time
}

// NewLoginProtector creates a LoginProtector.
func NewLoginProtector() *LoginProtector {
	return &LoginProtector{
		ips:      make(map[string]*ipLimiter),
		accounts: make(map[string]*accountState),
		now:      time.Now,
	}
}

// AllowAttempt reports whether the client IP may attempt a login now.
func (p *LoginProtector) AllowAttempt(r *http.Request) bool {
	ip := clientIP(r)

	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.ips[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(loginRateLimit, loginRateBurst)}
		p.ips[ip] = l
	}
	l.lastSeen = p.now()

	p.evictStale()
	return l.limiter.Allow()
}

// IsLocked reports whether the account is currently locked out.
func (p *LoginProtector) IsLocked(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.accounts[email]
	return ok && p.now().Before(s.lockedUntil)
}

// RecordFailure counts a failed login. After maxLoginFailures the account
// locks for lockoutDuration.
func (p *LoginProtector) RecordFailure(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.accounts[email]
	if !ok {
		s = &accountState{}
		p.accounts[email] = s
	}
	s.failures++
	if s.failures >= maxLoginFailures {
		s.lockedUntil = p.now().Add(lockoutDuration)
		s.failures = 0
	}
}

// RecordSuccess clears failure state after a successful login.
func (p *LoginProtector) RecordSuccess(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.accounts, email)
}

// evictStale drops limiters not seen recently. Caller holds the mutex.
func (p *LoginProtector) evictStale() {
	cutoff := p.now().Add(-limiterTTL)
	for ip, l := range p.ips {
		if l.lastSeen.Before(cutoff) {
			delete(p.ips, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
