package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// desc returns a 128-d descriptor whose first component is v, so the
// distance between desc(a) and desc(b) is |a-b|
func desc(v float64) domain.DescriptorVector {
	d := make(domain.DescriptorVector, domain.DescriptorSize)
	d[0] = v
	return d
}

func faceAt(v float64) provider.DetectedFace {
	return provider.DetectedFace{
		Box:        domain.FaceBox{X: 10, Y: 10, Width: 50, Height: 50},
		Descriptor: desc(v),
		Confidence: 0.99,
	}
}

func storedRecord(eventID, email string, values ...float64) domain.FaceRecord {
	rec := domain.FaceRecord{ID: uuid.New(), EventID: eventID, Name: email, Email: email}
	for _, v := range values {
		rec.Detections = append(rec.Detections, domain.FaceDetection{
			Descriptor: desc(v),
			Distances:  make([]float64, len(values)),
		})
	}
	return rec
}

type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.DetectedFace), args.Error(1)
}

func (m *MockDetector) Name() string {
	return "mock-detector"
}

type MockFaceRecordStore struct {
	mock.Mock
}

func (m *MockFaceRecordStore) ListByEvent(ctx context.Context, eventID string) ([]domain.FaceRecord, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FaceRecord), args.Error(1)
}

func (m *MockFaceRecordStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockFaceRecordStore) Create(ctx context.Context, record *domain.FaceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFaceRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FaceRecord), args.Error(1)
}

func (m *MockFaceRecordStore) List(ctx context.Context, eventID string) ([]domain.FaceRecord, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FaceRecord), args.Error(1)
}

func (m *MockFaceRecordStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockScanLogs struct {
	mock.Mock
}

func (m *MockScanLogs) Create(ctx context.Context, scan *domain.ScanLog) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanLogs) ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error) {
	args := m.Called(ctx, eventID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScanLog), args.Error(1)
}

// memoryStore is a FaceRecordStore backed by a slice, used where many
// goroutines enroll at once
type memoryStore struct {
	mu      sync.Mutex
	records []domain.FaceRecord
}

func (s *memoryStore) ListByEvent(_ context.Context, eventID string) ([]domain.FaceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FaceRecord, 0)
	for _, r := range s.records {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) Create(_ context.Context, record *domain.FaceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *memoryStore) count(eventID string) int {
	recs, _ := s.ListByEvent(context.Background(), eventID)
	return len(recs)
}
