package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(7, "manager1", "manager")
	if err != nil {
		t.Fatalf("генерация: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("проверка: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("неверный user_id: %d", claims.UserID)
	}
	if claims.Username != "manager1" {
		t.Errorf("неверное имя: %q", claims.Username)
	}
	if claims.Role != "manager" {
		t.Errorf("неверная роль: %q", claims.Role)
	}
	if claims.Issuer != "silant-service" {
		t.Errorf("неверный issuer: %q", claims.Issuer)
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("не.токен.вовсе"); err == nil {
		t.Error("мусорная строка не должна проходить проверку")
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	claims := JWTClaims{
		UserID:   1,
		Username: "x",
		Role:     "manager",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("другой-секрет"))
	if err != nil {
		t.Fatalf("подпись: %v", err)
	}
	if _, err := ValidateJWT(signed); err == nil {
		t.Error("токен с чужим секретом не должен проходить проверку")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	claims := JWTClaims{
		UserID:   1,
		Username: "x",
		Role:     "manager",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("подпись: %v", err)
	}
	if _, err := ValidateJWT(signed); err == nil {
		t.Error("просроченный токен не должен проходить проверку")
	}
}
