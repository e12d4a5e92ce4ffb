package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

const pgUniqueViolation = "23505"

// isConstraintViolation reports a unique violation raised by the named
// constraint or index
func isConstraintViolation(err error, name string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == name
	}
	return false
}

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, pgUniqueViolation) ||
		strings.Contains(errMsg, "unique") ||
		strings.Contains(errMsg, "duplicate key")
}

func toVector(d domain.DescriptorVector) pgvector.Vector {
	floats := make([]float32, len(d))
	for i, v := range d {
		floats[i] = float32(v)
	}
	return pgvector.NewVector(floats)
}

func fromVector(v *pgvector.Vector) domain.DescriptorVector {
	if v == nil {
		return nil
	}
	s := v.Slice()
	out := make(domain.DescriptorVector, len(s))
	for i, f := range s {
		out[i] = float64(f)
	}
	return out
}
