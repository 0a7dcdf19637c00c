package utils

import (
	"context"
	"sync"
	"time"
)

// revokedEntry keeps expiration metadata for a revoked token id.
type revokedEntry struct {
	expiresAt time.Time
}

var (
	revoked   = map[string]revokedEntry{}
	revokedMu sync.RWMutex
)

// RevokeToken marks a token id (jti) as revoked until its natural expiry,
// supporting logout semantics. Redis is preferred so revocation survives
// restarts and is shared between instances; without it an in-memory map
// covers the single-process case.
func RevokeToken(jti string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "jwt:revoked:"+jti, "1", ttl).Err(); err == nil {
			return
		}
		// fall through to the in-memory map on Redis failure
	}
	revokedMu.Lock()
	revoked[jti] = revokedEntry{expiresAt: expiresAt}
	revokedMu.Unlock()
}

// IsTokenRevoked reports whether a token id was revoked before natural expiration.
func IsTokenRevoked(jti string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, "jwt:revoked:"+jti).Result(); err == nil && n > 0 {
			return true
		}
	}

	revokedMu.RLock()
	entry, ok := revoked[jti]
	revokedMu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(entry.expiresAt) {
		revokedMu.Lock()
		delete(revoked, jti)
		revokedMu.Unlock()
		return false
	}

	return true
}
