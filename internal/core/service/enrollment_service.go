package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

// EnrollmentService implements the enrollment pipeline: normalize the photo,
// scan the store for an already-enrolled face, and insert only when no match
// is found.
type EnrollmentService struct {
	repo       ports.IdentityRepository
	comparator ports.FaceComparator
	images     ports.FaceImageStore
	normalizer ports.PhotoNormalizer
	logger     zerolog.Logger
}

func NewEnrollmentService(
	repo ports.IdentityRepository,
	comparator ports.FaceComparator,
	images ports.FaceImageStore,
	normalizer ports.PhotoNormalizer,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		repo:       repo,
		comparator: comparator,
		images:     images,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Enroll runs the full pipeline for one submission.
//
// Exactly one of three filesystem outcomes holds on return: no file persisted
// (validation or decode failure), one durable image (identity created), or a
// file created and removed again (duplicate face or phone already taken).
func (s *EnrollmentService) Enroll(ctx context.Context, input ports.EnrollInput) (*ports.EnrollResult, error) {
	if input.Name == "" || input.DOB == "" || input.Email == "" || input.BloodGroup == "" ||
		input.Phone == "" || input.Password == "" || len(input.Photo) == 0 {
		return nil, domain.ErrMissingFields
	}

	normalized, err := s.normalizer.Normalize(input.Photo)
	if err != nil {
		s.logger.Warn().Err(err).Str("phone", input.Phone).Msg("photo normalization failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	ref, err := s.images.Save(input.PhotoFilename, normalized)
	if err != nil {
		return nil, fmt.Errorf("save normalized photo: %w", err)
	}

	match, err := s.scanForDuplicate(ctx, ref)
	if err != nil {
		s.removeImage(ref)
		return nil, err
	}
	if match != nil {
		// The new photo is discarded; the caller learns which enrolled phone
		// number already owns this face.
		s.removeImage(ref)
		s.logger.Info().
			Str("matched_identity", match.ID).
			Str("matched_phone", match.Phone).
			Msg("enrollment rejected: face already enrolled")
		return &ports.EnrollResult{
			Outcome:      ports.OutcomeDuplicateFace,
			MatchedPhone: match.Phone,
		}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.removeImage(ref)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &domain.Identity{
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Name:         input.Name,
		DOB:          input.DOB,
		Email:        input.Email,
		BloodGroup:   input.BloodGroup,
		FaceImageRef: ref,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, identity)
	if err != nil {
		s.removeImage(ref)
		if errors.Is(err, domain.ErrPhoneExists) {
			return nil, domain.ErrPhoneExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	s.logger.Info().Str("identity_id", created.ID).Str("phone", created.Phone).Msg("identity enrolled")
	return &ports.EnrollResult{Outcome: ports.OutcomeCreated, IdentityID: created.ID}, nil
}

// scanForDuplicate compares the new photo against every enrolled face with
// first-match-wins semantics. A comparator failure for one pair is never
// fatal: it is logged and the scan moves on to the next candidate.
func (s *EnrollmentService) scanForDuplicate(ctx context.Context, newRef string) (*ports.FaceRecord, error) {
	records, err := s.repo.ListFaceRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrolled faces: %w", err)
	}

	for _, rec := range records {
		verdict, err := s.comparator.Verify(ctx, newRef, rec.FaceImageRef)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("candidate_identity", rec.ID).
				Msg("face comparison failed, treating as no match")
			continue
		}
		if verdict.Verified {
			s.logger.Debug().
				Str("candidate_identity", rec.ID).
				Float64("score", verdict.Score).
				Msg("face match found")
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *EnrollmentService) removeImage(ref string) {
	if err := s.images.Remove(ref); err != nil {
		s.logger.Error().Err(err).Str("ref", ref).Msg("failed to remove normalized photo")
	}
}
