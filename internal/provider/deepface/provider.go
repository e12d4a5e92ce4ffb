package deepface

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
)

// Provider implements provider.FaceDetector using DeepFace API
type Provider struct {
	client *Client
}

var _ provider.FaceDetector = (*Provider)(nil)

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// Name implements provider.FaceDetector
func (p *Provider) Name() string {
	return "deepface"
}

// Ping checks DeepFace reachability
func (p *Provider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// DetectFaces detects faces in the image and returns their descriptors
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", provider.ErrImageRejected)
	}

	resp, err := p.client.Represent(ctx, toDataURI(image))
	if err != nil {
		if isNoFaceError(err) {
			return []provider.DetectedFace{}, nil
		}
		if isClientError(err) {
			return nil, fmt.Errorf("%w: %v", provider.ErrImageRejected, err)
		}
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Results))
	for i, result := range resp.Results {
		if len(result.Embedding) == 0 {
			return nil, fmt.Errorf("%w: result %d has no embedding", ErrInvalidResponse, i)
		}

		faces = append(faces, provider.DetectedFace{
			Box: domain.FaceBox{
				X:      float64(result.FacialArea.X),
				Y:      float64(result.FacialArea.Y),
				Width:  float64(result.FacialArea.W),
				Height: float64(result.FacialArea.H),
			},
			Descriptor: domain.DescriptorVector(result.Embedding),
			Landmarks:  landmarksFrom(result.FacialArea),
			Confidence: result.FaceConfidence,
		})
	}

	return faces, nil
}

func toDataURI(image []byte) string {
	return "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
}

func landmarksFrom(area FacialArea) domain.FaceLandmarks {
	lm := domain.FaceLandmarks{}
	if len(area.LeftEye) == 2 {
		lm["left_eye"] = []int{area.LeftEye[0], area.LeftEye[1]}
	}
	if len(area.RightEye) == 2 {
		lm["right_eye"] = []int{area.RightEye[0], area.RightEye[1]}
	}
	if len(lm) == 0 {
		return nil
	}
	return lm
}

// isNoFaceError reports whether DeepFace rejected the image because
// enforce_detection found no face
func isNoFaceError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode >= 500 {
		return false
	}

	msg := se.Body
	var body errorResponse
	if json.Unmarshal([]byte(se.Body), &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return strings.Contains(strings.ToLower(msg), "face could not be detected")
}
