package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoVerifier = errors.New("no token verifier configured")
	ErrNoSubject  = errors.New("token has no subject")
)

// Claims is what the API keeps from a verified session token
type Claims struct {
	Subject string
	Email   string
}

// Verifier checks session tokens issued by the identity provider.
// HS256 tokens use Secret; RS256 tokens are checked against the JWKS.
type Verifier struct {
	Secret string
	Issuer string
	JWKS   *Provider
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if v == nil || (v.Secret == "" && v.JWKS == nil) {
		return nil, ErrNoVerifier
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "RS256"})}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if v.Secret == "" {
				return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
			}
			return []byte(v.Secret), nil
		case *jwt.SigningMethodRSA:
			if v.JWKS == nil {
				return nil, fmt.Errorf("RS256 token received but AUTH_JWKS_URL is not configured")
			}
			kid, _ := token.Header["kid"].(string)
			return v.JWKS.PublicKey(ctx, kid)
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrNoSubject
	}
	email, _ := claims["email"].(string)

	return &Claims{Subject: sub, Email: email}, nil
}
