package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifierHS256(t *testing.T) {
	v := &Verifier{Secret: "dev-secret", Issuer: "https://clerk.example.com"}
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		tok := signHS(t, "dev-secret", jwt.MapClaims{
			"sub":   "user_1",
			"email": "ada@example.com",
			"iss":   "https://clerk.example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		claims, err := v.Verify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "user_1", claims.Subject)
		assert.Equal(t, "ada@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signHS(t, "other", jwt.MapClaims{"sub": "user_1", "iss": "https://clerk.example.com"})
		_, err := v.Verify(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok := signHS(t, "dev-secret", jwt.MapClaims{
			"sub": "user_1",
			"iss": "https://clerk.example.com",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := v.Verify(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok := signHS(t, "dev-secret", jwt.MapClaims{"sub": "user_1", "iss": "https://evil.example.com"})
		_, err := v.Verify(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok := signHS(t, "dev-secret", jwt.MapClaims{"iss": "https://clerk.example.com"})
		_, err := v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrNoSubject)
	})
}

func TestVerifierNotConfigured(t *testing.T) {
	_, err := (&Verifier{}).Verify(context.Background(), "x.y.z")
	assert.ErrorIs(t, err, ErrNoVerifier)
}

func TestVerifierRS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	v := &Verifier{JWKS: NewProvider(srv.URL)}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "user_rsa"})
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "user_rsa", claims.Subject)

	// cached key, no second fetch
	_, err = v.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	// HS256 token without a secret is rejected
	_, err = v.Verify(context.Background(), signHS(t, "x", jwt.MapClaims{"sub": "u"}))
	assert.Error(t, err)
}

func TestProviderSkipsNonSigningKeys(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	n := base64.RawURLEncoding.EncodeToString(key.N.Bytes())
	e := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{
			{Kid: "sig", Kty: "RSA", Use: "sig", N: n, E: e},
			{Kid: "enc", Kty: "RSA", Use: "enc", N: n, E: e},
			{Kid: "ec", Kty: "EC"},
		}})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	pub, err := p.PublicKey(context.Background(), "sig")
	require.NoError(t, err)
	assert.Equal(t, key.N, pub.N)

	_, err = p.PublicKey(context.Background(), "enc")
	assert.ErrorIs(t, err, ErrUnknownKey)
	_, err = p.PublicKey(context.Background(), "ec")
	assert.ErrorIs(t, err, ErrUnknownKey)
}
