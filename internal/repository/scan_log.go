package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// defaultScanLimit caps ListByEvent when the caller passes no limit
const defaultScanLimit = 100

type ScanLogRepository struct {
	pool PgxPool
}

func NewScanLogRepository(pool PgxPool) *ScanLogRepository {
	return &ScanLogRepository{pool: pool}
}

func (r *ScanLogRepository) Create(ctx context.Context, s *domain.ScanLog) error {
	query := `
		INSERT INTO scan_logs (id, event_id, face_record_id, name, email, school, similarity, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING scanned_at
	`

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		s.ID,
		s.EventID,
		s.FaceRecordID,
		s.Name,
		s.Email,
		s.School,
		s.Similarity,
	).Scan(&s.ScannedAt)
	if err != nil {
		return fmt.Errorf("create scan log: %w", err)
	}

	return nil
}

// ListByEvent returns the latest scans of an event, newest first
func (r *ScanLogRepository) ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error) {
	if limit <= 0 {
		limit = defaultScanLimit
	}

	query := `
		SELECT id, event_id, face_record_id, name, email, school, similarity, scanned_at
		FROM scan_logs
		WHERE event_id = $1
		ORDER BY scanned_at DESC, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("list scan logs: %w", err)
	}
	defer rows.Close()

	scans := make([]domain.ScanLog, 0)
	for rows.Next() {
		var s domain.ScanLog
		if err := rows.Scan(&s.ID, &s.EventID, &s.FaceRecordID, &s.Name, &s.Email, &s.School, &s.Similarity, &s.ScannedAt); err != nil {
			return nil, fmt.Errorf("list scan logs: scan: %w", err)
		}
		scans = append(scans, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scan logs: %w", err)
	}

	return scans, nil
}
