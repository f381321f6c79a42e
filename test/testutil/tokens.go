package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer signs bearer tokens the API accepts.
type TokenIssuer struct {
	key       *rsa.PrivateKey
	PublicPEM string
}

func NewTokenIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	return &TokenIssuer{
		key:       key,
		PublicPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
	}
}

func (i *TokenIssuer) Sign(t *testing.T, userID, email, jti string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   "core",
		"aud":   "videos",
		"sub":   userID,
		"email": email,
		"jti":   jti,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(i.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
