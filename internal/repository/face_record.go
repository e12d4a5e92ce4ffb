package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// selectFaceRecords returns one row per detection; rows of the same record
// are contiguous and ordered by detection position
const selectFaceRecords = `
	SELECT r.id, r.event_id, r.name, r.school, r.email, r.image_path, r.created_at,
	       d.box_x, d.box_y, d.box_width, d.box_height, d.descriptor, d.landmarks, d.distances
	FROM face_records r
	INNER JOIN face_detections d ON d.record_id = r.id
`

const orderFaceRecords = `
	ORDER BY r.created_at, r.id, d.position
`

type FaceRecordRepository struct {
	pool PgxPool
}

func NewFaceRecordRepository(pool PgxPool) *FaceRecordRepository {
	return &FaceRecordRepository{pool: pool}
}

// Create persists the record and all of its detections in one transaction
func (r *FaceRecordRepository) Create(ctx context.Context, record *domain.FaceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create face record: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO face_records (id, event_id, name, school, email, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`,
		record.ID,
		record.EventID,
		record.Name,
		record.School,
		record.Email,
		record.ImagePath,
	).Scan(&record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail.WithError(err)
		}
		return fmt.Errorf("create face record: %w", err)
	}

	for i, d := range record.Detections {
		_, err := tx.Exec(ctx, `
			INSERT INTO face_detections (record_id, position, box_x, box_y, box_width, box_height, descriptor, landmarks, distances)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			record.ID,
			i,
			d.Box.X,
			d.Box.Y,
			d.Box.Width,
			d.Box.Height,
			toVector(d.Descriptor),
			d.Landmarks,
			d.Distances,
		)
		if err != nil {
			return fmt.Errorf("create face detection %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail.WithError(err)
		}
		return fmt.Errorf("create face record: commit: %w", err)
	}

	return nil
}

// ListByEvent returns every record enrolled for the event, oldest first
func (r *FaceRecordRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.FaceRecord, error) {
	rows, err := r.pool.Query(ctx, selectFaceRecords+`WHERE r.event_id = $1`+orderFaceRecords, eventID)
	if err != nil {
		return nil, fmt.Errorf("list face records by event: %w", err)
	}

	records, err := scanFaceRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list face records by event: %w", err)
	}

	return records, nil
}

// EmailExists reports whether any record, in any event, uses the email
func (r *FaceRecordRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM face_records WHERE lower(email) = lower($1))
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check face record email: %w", err)
	}

	return exists, nil
}

func (r *FaceRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error) {
	rows, err := r.pool.Query(ctx, selectFaceRecords+`WHERE r.id = $1`+orderFaceRecords, id)
	if err != nil {
		return nil, fmt.Errorf("get face record: %w", err)
	}

	records, err := scanFaceRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("get face record: %w", err)
	}

	if len(records) == 0 {
		return nil, domain.ErrFaceRecordNotFound
	}

	return &records[0], nil
}

// List returns all records, or only those of eventID when it is not empty
func (r *FaceRecordRepository) List(ctx context.Context, eventID string) ([]domain.FaceRecord, error) {
	if eventID != "" {
		return r.ListByEvent(ctx, eventID)
	}

	rows, err := r.pool.Query(ctx, selectFaceRecords+orderFaceRecords)
	if err != nil {
		return nil, fmt.Errorf("list face records: %w", err)
	}

	records, err := scanFaceRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list face records: %w", err)
	}

	return records, nil
}

func (r *FaceRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM face_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete face record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFaceRecordNotFound
	}

	return nil
}

func scanFaceRecords(rows pgx.Rows) ([]domain.FaceRecord, error) {
	defer rows.Close()

	records := make([]domain.FaceRecord, 0)
	for rows.Next() {
		var (
			rec        domain.FaceRecord
			det        domain.FaceDetection
			descriptor *pgvector.Vector
		)

		err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.Name,
			&rec.School,
			&rec.Email,
			&rec.ImagePath,
			&rec.CreatedAt,
			&det.Box.X,
			&det.Box.Y,
			&det.Box.Width,
			&det.Box.Height,
			&descriptor,
			&det.Landmarks,
			&det.Distances,
		)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		det.Descriptor = fromVector(descriptor)

		if n := len(records); n > 0 && records[n-1].ID == rec.ID {
			records[n-1].Detections = append(records[n-1].Detections, det)
			continue
		}

		rec.Detections = []domain.FaceDetection{det}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
