package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// FaceRecordResponse is an enrolled attendee with its detected faces
type FaceRecordResponse struct {
	ID        string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID   string     `json:"event_id" example:"feira-2026"`
	Name      string     `json:"name" example:"Ana Souza"`
	School    string     `json:"school" example:"EE Centro"`
	Email     string     `json:"email" example:"ana@example.com"`
	ImagePath string     `json:"image_path,omitempty" example:"feira-2026/3f1c.jpg"`
	CreatedAt string     `json:"created_at" example:"2026-01-01T00:00:00Z"`
	Faces     []FaceData `json:"face_detections"`
}

// FaceData is one detected face of an enrollment image
type FaceData struct {
	Box        FaceBoxData `json:"face_box"`
	Descriptor []float64   `json:"descriptor"`
	Distances  []float64   `json:"distances" example:"0,0.83"`
}

type FaceBoxData struct {
	X      float64 `json:"x" example:"120"`
	Y      float64 `json:"y" example:"80"`
	Width  float64 `json:"width" example:"160"`
	Height float64 `json:"height" example:"160"`
}

type EnrollFaceResponse struct {
	Message string             `json:"message" example:"Face added successfully"`
	Record  FaceRecordResponse `json:"record"`
}

type VerificationMatchData struct {
	RecordID   string  `json:"record_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID    string  `json:"event_id" example:"feira-2026"`
	Name       string  `json:"name" example:"Ana Souza"`
	School     string  `json:"school" example:"EE Centro"`
	Email      string  `json:"email" example:"ana@example.com"`
	Similarity float64 `json:"similarity" example:"0.42"`
}

type VerifyFaceResponse struct {
	Message string                  `json:"message" example:"This face is verified"`
	Results []VerificationMatchData `json:"results"`
}

type EventBody struct {
	Title       string `json:"title" example:"Feira de Ciências"`
	Date        string `json:"date" example:"2026-11-20T09:00:00Z"`
	Facility    string `json:"facility" example:"Ginásio"`
	Description string `json:"description" example:"Mostra anual"`
}

type EventResponse struct {
	ID          string `json:"id" example:"7a0b6c1e-9d1f-4d7b-a3b4-0c2f7d1e5a11"`
	Title       string `json:"title" example:"Feira de Ciências"`
	Date        string `json:"date" example:"2026-11-20T09:00:00Z"`
	Facility    string `json:"facility" example:"Ginásio"`
	Description string `json:"description" example:"Mostra anual"`
	CreatedBy   string `json:"created_by" example:"Maria"`
	CreatedAt   string `json:"created_at" example:"2026-01-01T00:00:00Z"`
}

type RegistrationLinkResponse struct {
	Link string `json:"link" example:"https://eventface.example.com/events/7a0b6c1e-9d1f-4d7b-a3b4-0c2f7d1e5a11/register"`
}

type AttendeeBody struct {
	Name     string `json:"name" example:"Ana Souza"`
	School   string `json:"school" example:"EE Centro"`
	IDNumber string `json:"id_number" example:"12345"`
	Email    string `json:"email" example:"ana@example.com"`
}

type AttendeeResponse struct {
	ID       string `json:"id" example:"1d2c3b4a-0000-4000-8000-000000000001"`
	EventID  string `json:"event_id" example:"7a0b6c1e-9d1f-4d7b-a3b4-0c2f7d1e5a11"`
	Name     string `json:"name" example:"Ana Souza"`
	School   string `json:"school" example:"EE Centro"`
	IDNumber string `json:"id_number" example:" "`
	Email    string `json:"email" example:"ana@example.com"`
}

type ScanLogResponse struct {
	ID           string  `json:"id" example:"2e3f4a5b-0000-4000-8000-000000000002"`
	EventID      string  `json:"event_id" example:"feira-2026"`
	FaceRecordID string  `json:"face_record_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string  `json:"name" example:"Ana Souza"`
	Email        string  `json:"email" example:"ana@example.com"`
	Similarity   float64 `json:"similarity" example:"0.42"`
	ScannedAt    string  `json:"scanned_at" example:"2026-11-20T09:12:00Z"`
}

type RegisterBody struct {
	Role           string `json:"role" example:"event_organizer"`
	Name           string `json:"name" example:"Maria"`
	Email          string `json:"email" example:"maria@example.com"`
	Password       string `json:"password" example:"s3cret-pass"`
	ActivationDate string `json:"activation_date" example:"2026-01-01T00:00:00Z"`
	ExpirationDate string `json:"expiration_date" example:"2026-12-31T23:59:59Z"`
}

type OrganizerResponse struct {
	ID    string `json:"id" example:"9f8e7d6c-0000-4000-8000-000000000003"`
	Role  string `json:"role" example:"event_organizer"`
	Name  string `json:"name" example:"Maria"`
	Email string `json:"email" example:"maria@example.com"`
}

type LoginBody struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

type LoginResponse struct {
	Token     string            `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt string            `json:"expires_at" example:"2026-01-02T00:00:00Z"`
	Organizer OrganizerResponse `json:"organizer"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

var (
	errValidation = response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity")
	errAuth       = response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing credentials"}, "401", "Unauthorized")
	errInternal   = response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error")
	errEvent404   = response.New(ErrorResponse{Code: "EVENT_NOT_FOUND", Message: "Event not found"}, "404", "Not Found")
	bearer        = []map[string][]string{{"BearerAuth": {}}}
)

// NewSwagger creates and configures the Swagger documentation
func NewSwagger(host string) *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "EventFace API",
		Version:     "v1.0.0",
		Description: "Face enrollment and verification for event access",
		Host:        host,
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Auth

		endpoint.New(
			endpoint.POST,
			"/auth/register",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Create an organizer account"),
			endpoint.WithDescription("Admins never expire; other roles need activation_date and expiration_date. Creating an admin requires an admin token, except for the first account."),
			endpoint.WithBody(RegisterBody{}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(OrganizerResponse{}, "201", "Organizer created"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				response.New(ErrorResponse{Code: "FORBIDDEN", Message: "Access denied"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "ORGANIZER_ALREADY_EXISTS", Message: "An organizer with this email already exists"}, "409", "Conflict"),
				errInternal,
			}),
		),

		endpoint.New(
			endpoint.POST,
			"/auth/login",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Sign in"),
			endpoint.WithDescription("Issues a JWT that never outlives the account expiration date"),
			endpoint.WithBody(LoginBody{}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LoginResponse{}, "200", "Signed in"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				response.New(ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "ORGANIZER_INACTIVE", Message: "Organizer account is outside its activation window"}, "403", "Forbidden"),
				errInternal,
			}),
		),

		// Events

		endpoint.New(
			endpoint.POST,
			"/events",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Create an event"),
			endpoint.WithBody(EventBody{}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EventResponse{}, "201", "Event created"),
			}),
			endpoint.WithErrors([]response.Response{errValidation, errAuth, errInternal}),
			endpoint.WithSecurity(bearer),
		),

		endpoint.New(
			endpoint.GET,
			"/events",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("List events, most recent first"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]EventResponse{}, "200", "Events"),
			}),
			endpoint.WithErrors([]response.Response{errInternal}),
		),

		endpoint.New(
			endpoint.GET,
			"/events/{id}",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Get an event"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EventResponse{}, "200", "Event"),
			}),
			endpoint.WithErrors([]response.Response{errEvent404, errInternal}),
		),

		endpoint.New(
			endpoint.PUT,
			"/events/{id}",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Update an event"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id")),
			),
			endpoint.WithBody(EventBody{}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EventResponse{}, "200", "Event updated"),
			}),
			endpoint.WithErrors([]response.Response{errValidation, errAuth, errEvent404, errInternal}),
			endpoint.WithSecurity(bearer),
		),

		endpoint.New(
			endpoint.GET,
			"/events/{id}/registration-link",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Public registration link of an event"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RegistrationLinkResponse{}, "200", "Link"),
			}),
			endpoint.WithErrors([]response.Response{errEvent404, errInternal}),
		),

		endpoint.New(
			endpoint.POST,
			"/events/{id}/attendees",
			endpoint.WithTags("Attendees"),
			endpoint.WithSummary("Register an attendee without a face"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id")),
			),
			endpoint.WithBody(AttendeeBody{}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendeeResponse{}, "201", "Attendee registered"),
			}),
			endpoint.WithErrors([]response.Response{errValidation, errEvent404, errInternal}),
		),

		endpoint.New(
			endpoint.GET,
			"/events/{id}/attendees",
			endpoint.WithTags("Attendees"),
			endpoint.WithSummary("List attendees of an event"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]AttendeeResponse{}, "200", "Attendees"),
			}),
			endpoint.WithErrors([]response.Response{errAuth, errEvent404, errInternal}),
			endpoint.WithSecurity(bearer),
		),

		endpoint.New(
			endpoint.GET,
			"/events/{id}/scans",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Latest verification scans of an event"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Event id as used on enrollment")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of scans (default: 100, max: 1000)")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]ScanLogResponse{}, "200", "Scans, newest first"),
			}),
			endpoint.WithErrors([]response.Response{errAuth, errInternal}),
			endpoint.WithSecurity(bearer),
		),

		// Faces

		endpoint.New(
			endpoint.POST,
			"/faces",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Enroll the faces of an attendee"),
			endpoint.WithDescription("Multipart form with event_id, name, school, email and image. Every face in the image is stored. Rejected when a face is already enrolled in the same event or the email is already used."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EnrollFaceResponse{}, "201", "Face enrolled"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "MISSING_IMAGE", Message: "No image uploaded"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "DUPLICATE_FACE", Message: "This face is already registered on this event"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests, try again later"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "DETECTOR_UNAVAILABLE", Message: "Face detection service is temporarily unavailable"}, "503", "Service Unavailable"),
				errInternal,
			}),
		),

		endpoint.New(
			endpoint.POST,
			"/faces/verify",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Verify a face against an event"),
			endpoint.WithDescription("Multipart form with event_id and image. The first detected face is compared with every enrollment of the event; matches are sorted closest first."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerifyFaceResponse{}, "200", "Face verified"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "MISSING_IMAGE", Message: "No image uploaded"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "NO_MATCH", Message: "This face is not registered on this event"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests, try again later"}, "429", "Too Many Requests"),
				errInternal,
			}),
		),

		endpoint.New(
			endpoint.GET,
			"/faces",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("List face records"),
			endpoint.WithParams(
				parameter.StrParam("event_id", parameter.Query, parameter.WithDescription("Only records of this event")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]FaceRecordResponse{}, "200", "Face records"),
			}),
			endpoint.WithErrors([]response.Response{errAuth, errInternal}),
			endpoint.WithSecurity(bearer),
		),

		endpoint.New(
			endpoint.GET,
			"/faces/{id}",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Get a face record"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Face record id")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FaceRecordResponse{}, "200", "Face record"),
			}),
			endpoint.WithErrors([]response.Response{
				errAuth,
				response.New(ErrorResponse{Code: "FACE_RECORD_NOT_FOUND", Message: "Face record not found"}, "404", "Not Found"),
				errInternal,
			}),
			endpoint.WithSecurity(bearer),
		),

		endpoint.New(
			endpoint.DELETE,
			"/faces/{id}",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Delete a face record"),
			endpoint.WithDescription("Removes the record, its detections and the stored enrollment image"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Face record id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				errAuth,
				response.New(ErrorResponse{Code: "FACE_RECORD_NOT_FOUND", Message: "Face record not found"}, "404", "Not Found"),
				errInternal,
			}),
			endpoint.WithSecurity(bearer),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
