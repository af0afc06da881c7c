package ports

import "context"

// Verification is the verdict of a face comparison.
type Verification struct {
	// Verified reports whether both images depict the same person.
	Verified bool
	// Score is the comparator's distance or confidence value. Its scale is
	// implementation-defined; it is logged but never thresholded here.
	Score float64
}

// FaceComparator judges whether two stored face images depict the same person.
// Implementations must accept arbitrary images; an image with no detectable
// face may be reported either as an error or as a non-verified result.
type FaceComparator interface {
	Verify(ctx context.Context, imagePathA, imagePathB string) (Verification, error)
}

// FaceImageStore holds the normalized canonical face images. Save returns a
// durable reference that is later handed to the FaceComparator as a path.
type FaceImageStore interface {
	Save(filenameHint string, data []byte) (ref string, err error)
	Remove(ref string) error
}

// PhotoNormalizer converts a raw upload into the bounded-dimension canonical
// form persisted in the FaceImageStore.
type PhotoNormalizer interface {
	Normalize(data []byte) ([]byte, error)
}
