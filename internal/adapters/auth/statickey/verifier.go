// Package statickey valida el bearer de las rutas /admin contra ADMIN_API_KEY.
package statickey

import (
	"context"
	"crypto/subtle"
	"strings"

	"vet-clinic-booking/internal/ports/auth"
)

type Verifier struct {
	key string
}

// New devuelve nil si no hay clave: el router interpreta nil como admin deshabilitado.
func New(key string) *Verifier {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	return &Verifier{key: key}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || subtle.ConstantTimeCompare([]byte(token), []byte(v.key)) != 1 {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{Subject: "admin", Role: auth.RoleAdmin}, nil
}
