package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// AuthService issues and validates the session tokens carried in the
// auth cookie. Tokens identify the user by email.
type AuthService struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// TTL is how long issued tokens stay valid.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// IssueToken returns a signed session token for user.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"name": user.DisplayName,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token and returns the email
// from its sub claim. Any failure is domain.ErrUnauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthenticated
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthenticated
	}
	return sub, nil
}
