package matching

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// DuplicateResult is the outcome of the enrollment duplicate gate
type DuplicateResult int

const (
	// Unique means neither the face nor the email is already enrolled
	Unique DuplicateResult = iota
	// DuplicateFace means a candidate descriptor is closer than the threshold
	// to a descriptor already enrolled in the same event
	DuplicateFace
	// DuplicateEmail means the email is already used by any face record
	DuplicateEmail
)

func (r DuplicateResult) String() string {
	switch r {
	case Unique:
		return "unique"
	case DuplicateFace:
		return "duplicate_face"
	case DuplicateEmail:
		return "duplicate_email"
	default:
		return fmt.Sprintf("DuplicateResult(%d)", int(r))
	}
}

// Err maps a conflicting result to its domain error; Unique maps to nil.
func (r DuplicateResult) Err() error {
	switch r {
	case DuplicateFace:
		return domain.ErrDuplicateFace
	case DuplicateEmail:
		return domain.ErrDuplicateEmail
	default:
		return nil
	}
}

// FindDuplicateFace walks candidate → record → stored descriptor and stops at
// the first stored descriptor whose distance to a candidate is strictly below
// threshold. existing must already be scoped to a single event.
func FindDuplicateFace(candidates []domain.FaceDetection, existing []domain.FaceRecord, threshold float64) (bool, error) {
	for ci, candidate := range candidates {
		for ri := range existing {
			for _, stored := range existing[ri].Detections {
				d, err := Distance(candidate.Descriptor, stored.Descriptor)
				if err != nil {
					return false, fmt.Errorf("candidate %d vs record %s: %w", ci, existing[ri].ID, err)
				}
				if d < threshold {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
