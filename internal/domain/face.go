package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DescriptorSize é a dimensão padrão do descritor facial gerado pelo modelo
const DescriptorSize = 128

// DefaultSimilarityThreshold is the maximum Euclidean distance for two
// descriptors to be treated as the same identity.
const DefaultSimilarityThreshold = 0.6

// DescriptorVector é o embedding numérico de uma face detectada
type DescriptorVector []float64

// FaceBox represents the detected face area in the source image
type FaceBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FaceLandmarks is opaque geometry returned by the detector. It is stored
// alongside the descriptor and never interpreted by matching.
type FaceLandmarks map[string]interface{}

// FaceDetection is one face found in an enrollment image. Distances holds the
// distance from this descriptor to every descriptor detected in the same
// image, in detection order, with 0 at its own position.
type FaceDetection struct {
	Box        FaceBox          `json:"face_box"`
	Descriptor DescriptorVector `json:"descriptor"`
	Landmarks  FaceLandmarks    `json:"landmarks,omitempty"`
	Distances  []float64        `json:"distances"`
}

// FaceRecord representa um participante inscrito com biometria em um evento
type FaceRecord struct {
	ID         uuid.UUID       `json:"id"`
	EventID    string          `json:"event_id"`
	Name       string          `json:"name"`
	School     string          `json:"school"`
	Email      string          `json:"email"`
	Detections []FaceDetection `json:"face_detections"`
	ImagePath  string          `json:"image_path,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Descriptors returns the stored descriptors of the record in detection order
func (r *FaceRecord) Descriptors() []DescriptorVector {
	out := make([]DescriptorVector, 0, len(r.Detections))
	for _, d := range r.Detections {
		out = append(out, d.Descriptor)
	}
	return out
}

// Validate checks the invariants a record must hold before it is persisted
func (r *FaceRecord) Validate() error {
	if strings.TrimSpace(r.EventID) == "" {
		return errors.New("event id cannot be empty")
	}

	if !IsValidEmail(r.Email) {
		return fmt.Errorf("invalid email %q", r.Email)
	}

	if len(r.Detections) == 0 {
		return errors.New("face record requires at least one detection")
	}

	for i, d := range r.Detections {
		if len(d.Descriptor) == 0 {
			return fmt.Errorf("detection %d has an empty descriptor", i)
		}
		if len(d.Distances) != len(r.Detections) {
			return fmt.Errorf("detection %d has %d distances, want %d", i, len(d.Distances), len(r.Detections))
		}
	}

	return nil
}

// VerificationMatch is an enrolled identity whose nearest stored descriptor
// lies within the similarity threshold of the probe. Similarity is that
// distance, so lower means closer.
type VerificationMatch struct {
	RecordID   uuid.UUID `json:"record_id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	School     string    `json:"school"`
	Email      string    `json:"email"`
	Similarity float64   `json:"similarity"`
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail verifica se o email é um endereço simples bem formado
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && addr.Name == ""
}
