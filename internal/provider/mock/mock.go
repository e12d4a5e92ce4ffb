package mock

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
)

// minImageSize abaixo do qual o mock considera que não há face na imagem
const minImageSize = 1000

// Provider implementa provider.FaceDetector para testes e desenvolvimento.
// The same image bytes always produce the same descriptor, so re-enrolling a
// photo is detected as a duplicate while different photos are far apart.
type Provider struct{}

// New cria uma nova instância do MockProvider
func New() *Provider {
	return &Provider{}
}

// Name implements provider.FaceDetector
func (p *Provider) Name() string {
	return "mock"
}

// DetectFaces simula detecção de uma face por imagem
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(image) < minImageSize {
		return []provider.DetectedFace{}, nil
	}

	return []provider.DetectedFace{
		{
			Box:        domain.FaceBox{X: 0.1, Y: 0.1, Width: 0.8, Height: 0.8},
			Descriptor: generateDescriptor(image),
			Landmarks: domain.FaceLandmarks{
				"left_eye":  []float64{0.35, 0.4},
				"right_eye": []float64{0.65, 0.4},
			},
			Confidence: 0.99,
		},
	}, nil
}

// generateDescriptor gera descritor unitário determinístico a partir do hash
// da imagem
func generateDescriptor(image []byte) domain.DescriptorVector {
	seed := sha256.Sum256(image)
	desc := make(domain.DescriptorVector, domain.DescriptorSize)

	block := seed
	for i := 0; i < domain.DescriptorSize; i++ {
		// 8 components per 32-byte block, then re-hash for the next ones
		if i > 0 && i%8 == 0 {
			block = sha256.Sum256(block[:])
		}
		off := (i % 8) * 4
		u := binary.BigEndian.Uint32(block[off : off+4])
		desc[i] = float64(u)/math.MaxUint32*2 - 1
	}

	norm := 0.0
	for _, v := range desc {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return desc
	}

	for i := range desc {
		desc[i] /= norm
	}

	return desc
}

var _ provider.FaceDetector = (*Provider)(nil)
