package ports

import (
	"context"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
)

// FaceRecord is the projection of an identity used by the duplicate scan.
type FaceRecord struct {
	ID           string
	FaceImageRef string
	Phone        string
}

// IdentityRepository defines persistence operations for enrolled identities.
// The store enforces uniqueness of the phone number at insert time.
type IdentityRepository interface {
	// Insert persists a new identity and returns it with the store-assigned ID.
	// Returns domain.ErrPhoneExists when the phone number is already taken.
	Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	// ListFaceRecords returns (id, face_image_ref, phone) for every enrolled
	// identity. Iteration order is not guaranteed.
	ListFaceRecords(ctx context.Context) ([]FaceRecord, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
}
