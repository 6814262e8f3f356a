package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Minute, time.Hour)

	token, err := GenerateAccessToken(42, "operador")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "operador" || claims.Subject != "42" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenRejectsOtherSecret(t *testing.T) {
	InitJWT("one", time.Minute, time.Hour)
	token, err := GenerateAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	InitJWT("two", time.Minute, time.Hour)
	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	InitJWT("test-secret", -time.Minute, time.Hour)
	token, err := GenerateAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	InitJWT("test-secret", time.Minute, time.Hour)

	if _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestAccessTokenRejectsNoneAlgorithm(t *testing.T) {
	InitJWT("test-secret", time.Minute, time.Hour)
	claims := Claims{UserID: 1, Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := ValidateAccessToken(unsigned); err == nil {
		t.Fatal("unsigned token must be rejected")
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	token := GenerateRefreshToken()
	if token == GenerateRefreshToken() {
		t.Fatal("refresh tokens must be unique")
	}
	if HashRefreshToken(token) != HashRefreshToken(token) {
		t.Fatal("hash must be deterministic")
	}
	if HashRefreshToken(token) == token {
		t.Fatal("hash must not equal the token")
	}
}

func TestPasswordHashing(t *testing.T) {
	SetPasswordCost(4)
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !ComparePassword(hash, "s3cret!") {
		t.Fatal("expected password to match")
	}
	if ComparePassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestReservationCodes(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewReservationCode()
		if len(code) != 26 || !IsReservationCode(code) {
			t.Fatalf("malformed code %q", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
	if IsReservationCode("not-a-code") {
		t.Fatal("garbage must not parse as a code")
	}
}
