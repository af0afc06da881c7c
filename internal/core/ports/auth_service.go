package ports

import (
	"context"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
)

type AuthService interface {
	// Login verifies phone+password and returns a signed session token.
	// Unknown phone numbers and wrong passwords are indistinguishable: both
	// fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, phone, password string) (string, *domain.Identity, error)
	// Logout revokes the session carried by token.
	Logout(ctx context.Context, token string) error
	// Profile returns the identity behind an authenticated session.
	Profile(ctx context.Context, identityID string) (*domain.Identity, error)
}
