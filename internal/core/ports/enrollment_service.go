package ports

import "context"

// EnrollOutcome distinguishes the two terminal non-error results of an
// enrollment attempt.
type EnrollOutcome string

const (
	// OutcomeCreated means a new identity was persisted.
	OutcomeCreated EnrollOutcome = "created"
	// OutcomeDuplicateFace means the submitted photo matched an already
	// enrolled face and no identity was created.
	OutcomeDuplicateFace EnrollOutcome = "duplicate_face"
)

// EnrollInput carries all data needed to enroll a new identity.
type EnrollInput struct {
	Name       string
	DOB        string
	Email      string
	BloodGroup string
	Phone      string
	Password   string
	// Photo is the raw uploaded image; PhotoFilename is the client-supplied
	// name, used only as a hint for the stored filename.
	Photo         []byte
	PhotoFilename string
}

// EnrollResult is returned by the enrollment pipeline.
type EnrollResult struct {
	Outcome EnrollOutcome
	// IdentityID is set when Outcome is OutcomeCreated.
	IdentityID string
	// MatchedPhone is the phone number of the already-enrolled identity whose
	// face matched; set when Outcome is OutcomeDuplicateFace.
	MatchedPhone string
}

// EnrollmentService is the use-case boundary of the enrollment pipeline.
type EnrollmentService interface {
	Enroll(ctx context.Context, input EnrollInput) (*EnrollResult, error)
}
