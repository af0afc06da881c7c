package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

const collectionIdentities = "identities"

type IdentityRepository struct {
	col *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{col: db.Collection(collectionIdentities)}
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
	Name         string             `bson:"name"`
	DOB          string             `bson:"dob"`
	Email        string             `bson:"email"`
	BloodGroup   string             `bson:"blood_group"`
	FaceImageRef string             `bson:"face_image_ref"`
	CreatedAt    int64              `bson:"created_at"`
}

// Insert persists a new identity. The unique index on phone turns a second
// enrollment with the same number into domain.ErrPhoneExists.
func (r *IdentityRepository) Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoIdentity{
		Phone:        identity.Phone,
		PasswordHash: identity.PasswordHash,
		Name:         identity.Name,
		DOB:          identity.DOB,
		Email:        identity.Email,
		BloodGroup:   identity.BloodGroup,
		FaceImageRef: identity.FaceImageRef,
		CreatedAt:    identity.CreatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPhoneExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	created := *identity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListFaceRecords streams the projection used by the duplicate scan.
func (r *IdentityRepository) ListFaceRecords(ctx context.Context) ([]ports.FaceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projection := options.Find().SetProjection(bson.M{
		"phone":          1,
		"face_image_ref": 1,
	})
	cursor, err := r.col.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, fmt.Errorf("list face records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []ports.FaceRecord
	for cursor.Next(ctx) {
		var doc mongoIdentity
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode face record: %w", err)
		}
		records = append(records, ports.FaceRecord{
			ID:           doc.ID.Hex(),
			FaceImageRef: doc.FaceImageRef,
			Phone:        doc.Phone,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate face records: %w", err)
	}
	return records, nil
}

func (r *IdentityRepository) FindByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoIdentity
	if err := r.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by phone: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	var doc mongoIdentity
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by id: %w", err)
	}
	return toDomain(&doc), nil
}

// EnsureIndexes creates the unique phone index that backs the contact
// uniqueness invariant.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomain(doc *mongoIdentity) *domain.Identity {
	return &domain.Identity{
		ID:           doc.ID.Hex(),
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		Name:         doc.Name,
		DOB:          doc.DOB,
		Email:        doc.Email,
		BloodGroup:   doc.BloodGroup,
		FaceImageRef: doc.FaceImageRef,
		CreatedAt:    unixToTime(doc.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
