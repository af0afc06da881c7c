package domain

import (
	"errors"
	"time"
)

var ErrMissingFields = errors.New("all required fields must be provided")
var ErrInvalidImage = errors.New("photo could not be decoded")
var ErrPhoneExists = errors.New("phone number already registered")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrInvalidCredentials = errors.New("invalid phone number or password")

// Identity is one enrolled person. Records are append-only: once created by
// the enrollment pipeline they are never updated or deleted.
type Identity struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	DOB          string    `json:"dob"`
	Email        string    `json:"email"`
	BloodGroup   string    `json:"blood_group"`
	FaceImageRef string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
