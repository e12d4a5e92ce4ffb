package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/matching"
	"github.com/saturnino-fabrica-de-software/eventface/internal/observability"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
)

// FaceRecordLister loads the enrollments of one event
type FaceRecordLister interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
}

// ScanLogWriter records successful verifications
type ScanLogWriter interface {
	Create(ctx context.Context, scan *domain.ScanLog) error
}

type VerificationService struct {
	records   FaceRecordLister
	detector  provider.FaceDetector
	scans     ScanLogWriter
	threshold float64
	logger    *slog.Logger
}

func NewVerificationService(
	records FaceRecordLister,
	detector provider.FaceDetector,
	logger *slog.Logger,
) *VerificationService {
	return &VerificationService{
		records:   records,
		detector:  detector,
		threshold: domain.DefaultSimilarityThreshold,
		logger:    logger,
	}
}

func (s *VerificationService) WithThreshold(threshold float64) *VerificationService {
	s.threshold = threshold
	return s
}

// WithScanLog enables recording the best match of every successful call
func (s *VerificationService) WithScanLog(scans ScanLogWriter) *VerificationService {
	s.scans = scans
	return s
}

// Verify matches the first face of the image against the event enrollments.
// Matches are ordered from closest to farthest. Only the first detected face
// is used even when the image holds more.
func (s *VerificationService) Verify(ctx context.Context, eventID string, image []byte) ([]domain.VerificationMatch, error) {
	matches, err := s.verify(ctx, eventID, image)
	observability.Verifications.WithLabelValues(verificationOutcome(err)).Inc()
	return matches, err
}

func (s *VerificationService) verify(ctx context.Context, eventID string, image []byte) ([]domain.VerificationMatch, error) {
	if len(image) == 0 {
		return nil, domain.ErrMissingImage
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("event id is required"))
	}

	faces, err := detectFaces(ctx, s.detector, image)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: load enrollments: %w", eventID, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoEnrollments
	}

	start := time.Now()
	matches, err := matching.MatchRecords(faces[0].Descriptor, records, s.threshold)
	observability.MatchingDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	observability.RecordsCompared.WithLabelValues("verify").Observe(float64(len(records)))
	if err != nil {
		return nil, matchingError(err)
	}

	if len(matches) == 0 {
		return nil, domain.ErrNoMatch
	}

	s.recordScan(ctx, matches[0])

	return matches, nil
}

// recordScan is best-effort: a failure is logged and never fails the call
func (s *VerificationService) recordScan(ctx context.Context, best domain.VerificationMatch) {
	if s.scans == nil {
		return
	}

	recordID := best.RecordID
	scan := &domain.ScanLog{
		EventID:      best.EventID,
		FaceRecordID: &recordID,
		Name:         best.Name,
		Email:        best.Email,
		School:       best.School,
		Similarity:   best.Similarity,
	}

	if err := s.scans.Create(ctx, scan); err != nil {
		s.logger.Warn("failed to record scan",
			slog.String("event_id", best.EventID),
			slog.String("record_id", recordID.String()),
			slog.Any("error", err),
		)
	}
}

func verificationOutcome(err error) string {
	switch {
	case err == nil:
		return "matched"
	case errors.Is(err, domain.ErrNoMatch):
		return "no_match"
	case errors.Is(err, domain.ErrNoEnrollments):
		return "no_enrollments"
	case errors.Is(err, domain.ErrNoFaceDetected):
		return "no_face"
	default:
		return "error"
	}
}
