package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of biometric operation being recorded
type Action string

const (
	ActionFaceEnrolled Action = "FACE_ENROLLED"
	ActionFaceVerified Action = "FACE_VERIFIED"
	ActionFaceDeleted  Action = "FACE_DELETED"
)

// Entry is one audit record of an operation on biometric data
type Entry struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    Action            `json:"action"`
	EventID   string            `json:"event_id,omitempty"`
	RecordID  string            `json:"record_id,omitempty"`
	ActorID   string            `json:"actor_id,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	IPAddress string            `json:"ip_address,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
}

// Logger records audit entries
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// SlogLogger writes entries as structured log lines under component=audit
type SlogLogger struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: logger.With("component", "audit"),
		now:    time.Now,
	}
}

func (l *SlogLogger) Log(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to marshal audit entry",
			slog.String("error", err.Error()),
			slog.String("action", string(entry.Action)),
		)
		return err
	}

	l.logger.InfoContext(ctx, "audit_entry",
		slog.String("audit_id", entry.ID.String()),
		slog.String("action", string(entry.Action)),
		slog.String("event_id", entry.EventID),
		slog.Bool("success", entry.Success),
		slog.String("entry", string(data)),
	)

	return nil
}

// NoOpLogger discards every entry
type NoOpLogger struct{}

func (NoOpLogger) Log(_ context.Context, _ Entry) error {
	return nil
}
