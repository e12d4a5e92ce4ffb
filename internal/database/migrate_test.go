//go:build integration

package database_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saturnino-fabrica-de-software/eventface/internal/database"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "pgvector/pgvector:pg16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "eventface_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://test:test@%s:%s/eventface_test?sslmode=disable", host, port.Port())
}

func TestMigratorIntegration(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := database.OpenSQL(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	t.Run("Up runs migrations successfully", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "eventface_test")
		require.NoError(t, err)

		require.NoError(t, migrator.Up())
		// second run is a no-op
		require.NoError(t, migrator.Up())

		for _, table := range []string{"organizers", "events", "attendees", "face_records", "face_detections", "scan_logs", "rate_limit_counters"} {
			assertTableExists(t, db, table)
		}
	})

	t.Run("Version returns current version", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "eventface_test")
		require.NoError(t, err)

		version, dirty, err := migrator.Version()
		require.NoError(t, err)
		assert.False(t, dirty, "migration should not be dirty")
		assert.Equal(t, uint(3), version)
	})

	t.Run("email uniqueness is case-insensitive", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO face_records (event_id, email) VALUES ('ev-1', 'Ana@Example.com')`)
		require.NoError(t, err)

		_, err = db.Exec(`INSERT INTO face_records (event_id, email) VALUES ('ev-2', 'ana@example.com')`)
		require.Error(t, err)
	})

	t.Run("detections are removed with their record", func(t *testing.T) {
		var id string
		err := db.QueryRow(`INSERT INTO face_records (event_id, email) VALUES ('ev-3', 'bob@example.com') RETURNING id`).Scan(&id)
		require.NoError(t, err)

		_, err = db.Exec(`
			INSERT INTO face_detections (record_id, position, box_x, box_y, box_width, box_height, descriptor, distances)
			VALUES ($1, 0, 0, 0, 10, 10, '[0.1,0.2,0.3]', '{0}')
		`, id)
		require.NoError(t, err)

		_, err = db.Exec(`DELETE FROM face_records WHERE id = $1`, id)
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM face_detections WHERE record_id = $1`, id).Scan(&count))
		assert.Equal(t, 0, count, "detections should be deleted via CASCADE")
	})

	t.Run("only one admin without creator", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO organizers (role, name, email, password_hash) VALUES ('admin', 'Root', 'root@example.com', 'x')`)
		require.NoError(t, err)

		_, err = db.Exec(`INSERT INTO organizers (role, name, email, password_hash) VALUES ('admin', 'Other', 'other@example.com', 'x')`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "idx_organizers_bootstrap_admin")

		_, err = db.Exec(`
			INSERT INTO organizers (role, name, email, password_hash, created_by_id)
			SELECT 'admin', 'Second', 'second@example.com', 'x', id FROM organizers WHERE email = 'root@example.com'
		`)
		require.NoError(t, err)

		_, err = db.Exec(`INSERT INTO organizers (role, name, email, password_hash, activation_date, expiration_date)
			VALUES ('event_organizer', 'Org', 'org@example.com', 'x', NOW(), NOW() + INTERVAL '1 day')`)
		require.NoError(t, err)
	})

	t.Run("Down rolls back", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "eventface_test")
		require.NoError(t, err)

		require.NoError(t, migrator.Down())

		var bootstrapIndex bool
		require.NoError(t, db.QueryRow(`
			SELECT EXISTS (SELECT FROM pg_indexes WHERE indexname = 'idx_organizers_bootstrap_admin')
		`).Scan(&bootstrapIndex))
		assert.False(t, bootstrapIndex)

		require.NoError(t, migrator.Down())

		var counters bool
		require.NoError(t, db.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'rate_limit_counters')
		`).Scan(&counters))
		assert.False(t, counters)

		require.NoError(t, migrator.Down())

		var exists bool
		require.NoError(t, db.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'face_records')
		`).Scan(&exists))
		assert.False(t, exists)
	})
}

func assertTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, tableName).Scan(&exists)

	require.NoError(t, err)
	assert.True(t, exists, "table %s should exist", tableName)
}
