package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
)

type stubSessionStore struct {
	active  map[string]string
	revoked []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{active: make(map[string]string)}
}

func (s *stubSessionStore) Create(_ context.Context, sessionID, identityID string, _ time.Duration) error {
	s.active[sessionID] = identityID
	return nil
}

func (s *stubSessionStore) Revoke(_ context.Context, sessionID string) error {
	delete(s.active, sessionID)
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func seedCredential(t *testing.T, repo *stubIdentityRepo, phone, password string) *domain.Identity {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	identity, err := repo.Insert(context.Background(), &domain.Identity{
		Phone:        phone,
		PasswordHash: string(hash),
		Name:         "Carol",
		DOB:          "1985-06-02",
		Email:        "carol@example.com",
		BloodGroup:   "B+",
		FaceImageRef: "carol.jpg",
	})
	if err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	return identity
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubIdentityRepo()
	sessions := newStubSessionStore()
	seeded := seedCredential(t, repo, "+1777", "p")
	svc := NewAuthService(repo, sessions, "secret", time.Hour)

	token, identity, err := svc.Login(context.Background(), "+1777", "p")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if identity == nil || identity.ID != seeded.ID {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != seeded.ID {
		t.Fatalf("expected sub %s, got %v", seeded.ID, claims["sub"])
	}
	if claims["phone"] != "+1777" {
		t.Fatalf("expected phone claim, got %v", claims["phone"])
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		t.Fatalf("expected jti claim")
	}
	if sessions.active[sessionID] != seeded.ID {
		t.Fatalf("session not registered for identity")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubIdentityRepo()
	seedCredential(t, repo, "+1777", "p")
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "+1777", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown phone and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UnknownPhoneSameError(t *testing.T) {
	repo := newStubIdentityRepo()
	seedCredential(t, repo, "+1777", "p")
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour)

	_, _, unknownErr := svc.Login(context.Background(), "+1999", "p")
	_, _, wrongErr := svc.Login(context.Background(), "+1777", "bad")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown phone: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if unknownErr != wrongErr {
		t.Fatalf("errors differ: %v vs %v", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubIdentityRepo(), newStubSessionStore(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", "p"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "+1777", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	repo := newStubIdentityRepo()
	sessions := newStubSessionStore()
	seedCredential(t, repo, "+1777", "p")
	svc := NewAuthService(repo, sessions, "secret", time.Hour)

	token, _, err := svc.Login(context.Background(), "+1777", "p")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.active) != 0 {
		t.Fatalf("expected session revoked, %d still active", len(sessions.active))
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected 1 revocation, got %d", len(sessions.revoked))
	}
}

func TestAuthService_Logout_BadToken(t *testing.T) {
	svc := NewAuthService(newStubIdentityRepo(), newStubSessionStore(), "secret", time.Hour)

	if err := svc.Logout(context.Background(), "not-a-token"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubIdentityRepo()
	seeded := seedCredential(t, repo, "+1777", "p")
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour)

	identity, err := svc.Profile(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("profile lookup failed: %v", err)
	}
	if identity.Phone != "+1777" || identity.Name != "Carol" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := svc.Profile(context.Background(), "missing"); err != domain.ErrIdentityNotFound {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}
