package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/matching"
	"github.com/saturnino-fabrica-de-software/eventface/internal/observability"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
	"github.com/saturnino-fabrica-de-software/eventface/internal/storage"
)

// FaceRecordStore is the face record persistence used by enrollment
type FaceRecordStore interface {
	FaceRecordReader
	Create(ctx context.Context, record *domain.FaceRecord) error
}

// ImageStore keeps the uploaded enrollment image
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// EnrollmentRequest is one attendee registering a face for an event
type EnrollmentRequest struct {
	EventID     string
	Name        string
	School      string
	Email       string
	Image       []byte
	ContentType string
}

type EnrollmentService struct {
	records   FaceRecordStore
	detector  provider.FaceDetector
	locker    *EventLocker
	images    ImageStore
	threshold float64
	logger    *slog.Logger
}

func NewEnrollmentService(
	records FaceRecordStore,
	detector provider.FaceDetector,
	locker *EventLocker,
	logger *slog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		records:   records,
		detector:  detector,
		locker:    locker,
		threshold: domain.DefaultSimilarityThreshold,
		logger:    logger,
	}
}

func (s *EnrollmentService) WithThreshold(threshold float64) *EnrollmentService {
	s.threshold = threshold
	return s
}

// WithImageStore enables keeping the uploaded image next to the record
func (s *EnrollmentService) WithImageStore(images ImageStore) *EnrollmentService {
	s.images = images
	return s
}

// Enroll detects every face in the image, rejects duplicates and persists
// the new record. The per-event lock is held from the duplicate check until
// the record is stored, so two concurrent enrollments of the same face in
// one event cannot both succeed.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollmentRequest) (*domain.FaceRecord, error) {
	record, err := s.enroll(ctx, req)
	observability.Enrollments.WithLabelValues(enrollmentOutcome(err)).Inc()
	return record, err
}

func (s *EnrollmentService) enroll(ctx context.Context, req EnrollmentRequest) (*domain.FaceRecord, error) {
	if len(req.Image) == 0 {
		return nil, domain.ErrMissingImage
	}

	eventID := strings.TrimSpace(req.EventID)
	email := domain.NormalizeEmail(req.Email)
	if eventID == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("event id is required"))
	}
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("invalid email %q", req.Email))
	}

	faces, err := detectFaces(ctx, s.detector, req.Image)
	if err != nil {
		return nil, err
	}

	detections, err := buildDetections(faces)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result, err := NewDuplicateDetector(s.records, s.threshold).Check(ctx, eventID, detections, email)
	if err != nil {
		return nil, err
	}
	if conflict := result.Err(); conflict != nil {
		s.logger.Info("enrollment rejected",
			slog.String("event_id", eventID),
			slog.String("reason", result.String()),
		)
		return nil, conflict
	}

	record := &domain.FaceRecord{
		EventID:    eventID,
		Name:       strings.TrimSpace(req.Name),
		School:     strings.TrimSpace(req.School),
		Email:      email,
		Detections: detections,
	}
	if err := record.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	persisted := false
	if s.images != nil {
		key := storage.ObjectKey(eventID, req.ContentType)
		if err := s.images.Put(ctx, key, req.Image, req.ContentType); err != nil {
			return nil, fmt.Errorf("stage enrollment image: %w", err)
		}
		record.ImagePath = key

		defer func() {
			if persisted {
				return
			}
			if err := s.images.Delete(context.WithoutCancel(ctx), key); err != nil {
				s.logger.Warn("failed to remove staged image",
					slog.String("key", key),
					slog.Any("error", err),
				)
			}
		}()
	}

	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("event %s: persist face record: %w", eventID, err)
	}
	persisted = true

	s.logger.Info("face enrolled",
		slog.String("event_id", eventID),
		slog.String("record_id", record.ID.String()),
		slog.Int("faces", len(detections)),
	)

	return record, nil
}

// buildDetections attaches to each face its distances to every face of the
// same image
func buildDetections(faces []provider.DetectedFace) ([]domain.FaceDetection, error) {
	distances, err := matching.PairwiseDistances(provider.Descriptors(faces))
	if err != nil {
		return nil, matchingError(err)
	}

	detections := make([]domain.FaceDetection, len(faces))
	for i, f := range faces {
		detections[i] = domain.FaceDetection{
			Box:        f.Box,
			Descriptor: f.Descriptor,
			Landmarks:  f.Landmarks,
			Distances:  distances[i],
		}
	}

	return detections, nil
}

func enrollmentOutcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, domain.ErrDuplicateFace):
		return "duplicate_face"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrNoFaceDetected):
		return "no_face"
	default:
		return "error"
	}
}
