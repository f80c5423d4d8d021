package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func TestAuthService_IssueAndValidate(t *testing.T) {
	auth := service.NewAuthService(testJWTSecret, time.Hour)
	user := &domain.User{ID: 7, Email: "a@x.com", DisplayName: "A"}

	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	email, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, email)
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	auth := service.NewAuthService(testJWTSecret, time.Hour)

	_, err := auth.ValidateToken("invalid.token.string")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	auth1 := service.NewAuthService("secret-one-secret-one-secret-one-xx", time.Hour)
	auth2 := service.NewAuthService("secret-two-secret-two-secret-two-xx", time.Hour)

	token, err := auth1.IssueToken(&domain.User{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := auth2.ValidateToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated with wrong secret, got %v", err)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	auth := service.NewAuthService(testJWTSecret, time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@x.com",
		"iat": past.Unix(),
		"exp": past.Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestAuthService_ValidateToken_MissingExpiry(t *testing.T) {
	auth := service.NewAuthService(testJWTSecret, time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@x.com",
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without exp, got %v", err)
	}
}
