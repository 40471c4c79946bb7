// Package jwt emite y valida los tokens HS256 que protegen las rutas de facturas.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt: secret no configurado")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Claims del token de acceso: registrados + rol ("reader" | "admin").
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Generate firma un token para subject, vigente durante ttlMinutes.
func Generate(secret, subject, role, issuer string, ttlMinutes int) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	issued := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Duration(ttlMinutes) * time.Minute)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse devuelve subject y rol de un token vigente firmado con secret.
// Solo se acepta HS256; cualquier fallo envuelve ErrInvalidToken.
func Parse(secret, token string) (subject, role string, err error) {
	if secret == "" {
		return "", "", ErrNoSecret
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims.Subject, claims.Role, nil
}
