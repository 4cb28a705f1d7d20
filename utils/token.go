package utils

import (
	"sync"
	"time"
)

var (
	revokedTokens = make(map[string]time.Time)
	revokedMutex  sync.RWMutex
)

// RevokeToken keeps the token on the revocation list until it would have
// expired anyway.
func RevokeToken(token string, until time.Time) {
	revokedMutex.Lock()
	defer revokedMutex.Unlock()

	now := time.Now()
	for t, expiry := range revokedTokens {
		if now.After(expiry) {
			delete(revokedTokens, t)
		}
	}
	revokedTokens[token] = until
}

func IsTokenRevoked(token string) bool {
	revokedMutex.RLock()
	defer revokedMutex.RUnlock()

	expiry, exists := revokedTokens[token]
	return exists && time.Now().Before(expiry)
}
