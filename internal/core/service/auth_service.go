package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

// dummyHash is a bcrypt hash of a throwaway value. When the phone number is
// unknown we still run one bcrypt comparison against it so the unknown-phone
// and wrong-password paths take equivalent time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SessionStore abstracts the active-session registry (Redis).
type SessionStore interface {
	Create(ctx context.Context, sessionID, identityID string, ttl time.Duration) error
	Revoke(ctx context.Context, sessionID string) error
}

// AuthService implements login, logout and profile lookup.
type AuthService struct {
	repo      ports.IdentityRepository
	sessions  SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.IdentityRepository, sessions SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, phone, password string) (string, *domain.Identity, error) {
	if phone == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		// Burn a comparison so "unknown phone" is not observably faster than
		// "wrong password", then report the same generic failure.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, err := s.generateToken(identity, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.sessions.Create(ctx, sessionID, identity.ID, s.tokenTTL); err != nil {
		return "", nil, fmt.Errorf("register session: %w", err)
	}

	return token, identity, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.ErrInvalidCredentials
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return domain.ErrInvalidCredentials
	}
	return s.sessions.Revoke(ctx, sessionID)
}

func (s *AuthService) Profile(ctx context.Context, identityID string) (*domain.Identity, error) {
	return s.repo.FindByID(ctx, identityID)
}

func (s *AuthService) generateToken(identity *domain.Identity, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"phone": identity.Phone,
		"jti":   sessionID,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
