package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// FaceRecordRepository is the full face record store used for management
type FaceRecordRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error)
	List(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FaceRecordService lists and removes enrolled records. Records are never
// updated once enrolled.
type FaceRecordService struct {
	records FaceRecordRepository
	images  ImageStore
	logger  *slog.Logger
}

func NewFaceRecordService(records FaceRecordRepository, logger *slog.Logger) *FaceRecordService {
	return &FaceRecordService{records: records, logger: logger}
}

// WithImageStore lets Delete remove the stored enrollment image
func (s *FaceRecordService) WithImageStore(images ImageStore) *FaceRecordService {
	s.images = images
	return s
}

func (s *FaceRecordService) Get(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *FaceRecordService) List(ctx context.Context, eventID string) ([]domain.FaceRecord, error) {
	return s.records.List(ctx, eventID)
}

// Delete removes a record and its image. Only roles that manage events may
// delete biometric data.
func (s *FaceRecordService) Delete(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if !actor.canManageEvents() {
		return domain.ErrForbidden
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}

	if s.images != nil && record.ImagePath != "" {
		if err := s.images.Delete(ctx, record.ImagePath); err != nil {
			s.logger.Warn("failed to remove enrollment image",
				slog.String("record_id", id.String()),
				slog.String("key", record.ImagePath),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("face record deleted",
		slog.String("record_id", id.String()),
		slog.String("event_id", record.EventID),
	)

	return nil
}
