package provider

import (
	"context"
	"errors"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// ErrImageRejected is returned when the detector refuses the image itself
// (unreadable or unsupported), as opposed to being unavailable
var ErrImageRejected = errors.New("image rejected by face detector")

// FaceDetector define a interface para detectores faciais.
// Implementations must return one DetectedFace per face found, in a stable
// order, and an empty slice (not an error) when the image holds no face.
type FaceDetector interface {
	// DetectFaces detecta faces na imagem e extrai o descritor de cada uma
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// Name identifica o detector nos logs e métricas
	Name() string
}

// DetectedFace represents a face found in the image together with its
// descriptor
type DetectedFace struct {
	Box        domain.FaceBox          `json:"face_box"`
	Descriptor domain.DescriptorVector `json:"descriptor"`
	Landmarks  domain.FaceLandmarks    `json:"landmarks,omitempty"`
	Confidence float64                 `json:"confidence"`
}

// Descriptors returns the descriptors of faces in detection order
func Descriptors(faces []DetectedFace) []domain.DescriptorVector {
	out := make([]domain.DescriptorVector, 0, len(faces))
	for _, f := range faces {
		out = append(out, f.Descriptor)
	}
	return out
}
