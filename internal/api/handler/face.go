package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/eventface/internal/audit"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

const defaultMaxImageSize = 10 * 1024 * 1024 // 10MB

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type EnrollmentService interface {
	Enroll(ctx context.Context, req service.EnrollmentRequest) (*domain.FaceRecord, error)
}

type VerificationService interface {
	Verify(ctx context.Context, eventID string, image []byte) ([]domain.VerificationMatch, error)
}

type FaceRecordService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error)
	List(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
	Delete(ctx context.Context, actor *service.Actor, id uuid.UUID) error
}

// FaceHandler serves enrollment, verification and face record management
type FaceHandler struct {
	enrollment   EnrollmentService
	verification VerificationService
	records      FaceRecordService
	maxImageSize int64
	audit        audit.Logger
	logger       *slog.Logger
}

func NewFaceHandler(
	enrollment EnrollmentService,
	verification VerificationService,
	records FaceRecordService,
	maxImageSize int64,
	logger *slog.Logger,
) *FaceHandler {
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}
	return &FaceHandler{
		enrollment:   enrollment,
		verification: verification,
		records:      records,
		maxImageSize: maxImageSize,
		audit:        audit.NoOpLogger{},
		logger:       logger,
	}
}

// WithAudit records every enrollment, verification and deletion in trail
func (h *FaceHandler) WithAudit(trail audit.Logger) *FaceHandler {
	if trail != nil {
		h.audit = trail
	}
	return h
}

// EnrollForm holds the text fields of the enrollment multipart form
type EnrollForm struct {
	EventID string `validate:"required,max=200"`
	Name    string `validate:"max=200"`
	School  string `validate:"max=200"`
	Email   string `validate:"required,email"`
}

type EnrollResponse struct {
	Message string             `json:"message"`
	Record  *domain.FaceRecord `json:"record"`
}

type VerifyResponse struct {
	Message string                     `json:"message"`
	Results []domain.VerificationMatch `json:"results"`
}

// Enroll POST /v1/faces - enroll the faces of an attendee in an event
func (h *FaceHandler) Enroll(c *fiber.Ctx) error {
	image, contentType, err := h.readImage(c)
	if err != nil {
		return err
	}

	form := EnrollForm{
		EventID: formValue(c, "event_id", "eventId"),
		Name:    formValue(c, "name"),
		School:  formValue(c, "school"),
		Email:   formValue(c, "email"),
	}
	if err := validateStruct(form); err != nil {
		return err
	}

	record, err := h.enrollment.Enroll(c.UserContext(), service.EnrollmentRequest{
		EventID:     form.EventID,
		Name:        form.Name,
		School:      form.School,
		Email:       form.Email,
		Image:       image,
		ContentType: contentType,
	})

	entry := audit.Entry{Action: audit.ActionFaceEnrolled, EventID: form.EventID}
	if record != nil {
		entry.RecordID = record.ID.String()
		entry.Metadata = map[string]string{"faces": strconv.Itoa(len(record.Detections))}
	}
	h.record(c, entry, err)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(EnrollResponse{
		Message: "Face added successfully",
		Record:  record,
	})
}

// Verify POST /v1/faces/verify - match a face against an event
func (h *FaceHandler) Verify(c *fiber.Ctx) error {
	image, _, err := h.readImage(c)
	if err != nil {
		return err
	}

	eventID := formValue(c, "event_id", "eventId")
	if eventID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("event_id is required"))
	}

	matches, err := h.verification.Verify(c.UserContext(), eventID, image)

	entry := audit.Entry{Action: audit.ActionFaceVerified, EventID: eventID}
	if len(matches) > 0 {
		entry.RecordID = matches[0].RecordID.String()
		entry.Metadata = map[string]string{"matches": strconv.Itoa(len(matches))}
	}
	h.record(c, entry, err)
	if err != nil {
		return err
	}

	return c.JSON(VerifyResponse{
		Message: "This face is verified",
		Results: matches,
	})
}

// List GET /v1/faces?event_id=
func (h *FaceHandler) List(c *fiber.Ctx) error {
	records, err := h.records.List(c.UserContext(), c.Query("event_id"))
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// Get GET /v1/faces/:id
func (h *FaceHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", domain.ErrFaceRecordNotFound)
	if err != nil {
		return err
	}

	record, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Delete DELETE /v1/faces/:id
func (h *FaceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", domain.ErrFaceRecordNotFound)
	if err != nil {
		return err
	}

	err = h.records.Delete(c.UserContext(), middleware.GetActor(c), id)
	h.record(c, audit.Entry{Action: audit.ActionFaceDeleted, RecordID: id.String()}, err)
	if err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// record completes entry with the request origin and outcome. Audit failures
// are logged and never fail the request.
func (h *FaceHandler) record(c *fiber.Ctx, entry audit.Entry, err error) {
	entry.Success = err == nil
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			entry.Error = appErr.Code
		} else {
			entry.Error = domain.ErrInternal.Code
		}
	}
	if actor := middleware.GetActor(c); actor != nil {
		entry.ActorID = actor.ID.String()
	}
	entry.IPAddress = c.IP()
	entry.UserAgent = c.Get(fiber.HeaderUserAgent)

	if auditErr := h.audit.Log(c.UserContext(), entry); auditErr != nil {
		h.logger.Warn("failed to write audit entry",
			slog.String("action", string(entry.Action)),
			slog.String("error", auditErr.Error()),
		)
	}
}

// readImage extracts and validates the "image" file of the form
func (h *FaceHandler) readImage(c *fiber.Ctx) ([]byte, string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", domain.ErrMissingImage.WithError(err)
	}

	if file.Size == 0 {
		return nil, "", domain.ErrMissingImage
	}
	if file.Size > h.maxImageSize {
		return nil, "", domain.ErrInvalidImage.WithError(errors.New("image exceeds the maximum size"))
	}

	data, err := readFile(file)
	if err != nil {
		return nil, "", domain.ErrInvalidImage.WithError(err)
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if !validImageTypes[contentType] {
		contentType = http.DetectContentType(data)
	}
	if !validImageTypes[contentType] {
		return nil, "", domain.ErrInvalidImage.WithError(errors.New("unsupported image type " + contentType))
	}

	return data, contentType, nil
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(f)
}
