package supabase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/micscribe/errors"
)

// KeyInfo describes an API key. Only legacy JWT keys carry claims.
type KeyInfo struct {
	IsJWT     bool
	Role      string
	Ref       string
	ExpiresAt time.Time
}

// InspectKey reads the claims of a JWT API key without verifying its
// signature. A key that is not a JWT is accepted as is. A key with the
// service_role role or an expiry before now is rejected.
func InspectKey(key string, now time.Time) (KeyInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return KeyInfo{}, nil
	}

	info := KeyInfo{IsJWT: true}
	info.Role, _ = claims["role"].(string)
	info.Ref, _ = claims["ref"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	if info.Role == "service_role" {
		return info, errors.Unauthorized("supabase: the service_role key must not be used by a client")
	}
	if !info.ExpiresAt.IsZero() && info.ExpiresAt.Before(now) {
		return info, errors.Unauthorized(fmt.Sprintf("supabase: anon key expired on %s", info.ExpiresAt.Format(time.DateOnly)))
	}
	return info, nil
}
