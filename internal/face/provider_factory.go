package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/eventface/internal/config"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider/mock"
)

// NewFaceDetector creates the process-wide FaceDetector selected by
// PROVIDER_TYPE. It is built once at boot and shared read-only by every
// request.
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface" or "mock" (default: "deepface")
//   - DEEPFACE_URL, DEEPFACE_MODEL, DEEPFACE_DETECTOR, DEEPFACE_TIMEOUT
func NewFaceDetector(cfg *config.Config) (provider.FaceDetector, error) {
	switch cfg.ProviderType {
	case config.ProviderDeepFace, "":
		return createDeepFaceProvider(cfg), nil

	case config.ProviderMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, config.ProviderDeepFace, config.ProviderMock)
	}
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) *deepface.Provider {
	dfConfig := deepface.DefaultConfig()

	if cfg.DeepFaceURL != "" {
		dfConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		dfConfig.Model = cfg.DeepFaceModel
	}
	if cfg.DeepFaceDetector != "" {
		dfConfig.Detector = cfg.DeepFaceDetector
	}
	if cfg.DeepFaceTimeout > 0 {
		dfConfig.Timeout = cfg.DeepFaceTimeout
	}

	return deepface.NewProvider(dfConfig)
}
