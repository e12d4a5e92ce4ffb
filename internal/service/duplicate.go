package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/matching"
	"github.com/saturnino-fabrica-de-software/eventface/internal/observability"
)

// FaceRecordReader is the read side of the face record store
type FaceRecordReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// DuplicateDetector decides whether a new enrollment conflicts with what is
// already stored. Face duplicates are scoped to the event; email duplicates
// are global and only checked when the face is new.
type DuplicateDetector struct {
	records   FaceRecordReader
	threshold float64
}

func NewDuplicateDetector(records FaceRecordReader, threshold float64) *DuplicateDetector {
	return &DuplicateDetector{records: records, threshold: threshold}
}

func (d *DuplicateDetector) Check(ctx context.Context, eventID string, candidates []domain.FaceDetection, email string) (matching.DuplicateResult, error) {
	existing, err := d.records.ListByEvent(ctx, eventID)
	if err != nil {
		return matching.Unique, fmt.Errorf("event %s: load enrollments: %w", eventID, err)
	}

	start := time.Now()
	dup, err := matching.FindDuplicateFace(candidates, existing, d.threshold)
	observability.MatchingDuration.WithLabelValues("duplicate").Observe(time.Since(start).Seconds())
	observability.RecordsCompared.WithLabelValues("duplicate").Observe(float64(len(existing)))
	if err != nil {
		return matching.Unique, matchingError(err)
	}
	if dup {
		return matching.DuplicateFace, nil
	}

	taken, err := d.records.EmailExists(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return matching.Unique, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return matching.DuplicateEmail, nil
	}

	return matching.Unique, nil
}

// matchingError lifts engine errors into the domain taxonomy
func matchingError(err error) error {
	if errors.Is(err, matching.ErrDimensionMismatch) {
		return domain.ErrDimensionMismatch.WithError(err)
	}
	return err
}
