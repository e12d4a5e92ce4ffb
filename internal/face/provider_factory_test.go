package face

import (
	"testing"

	"github.com/saturnino-fabrica-de-software/eventface/internal/config"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFaceDetector(t *testing.T) {
	tests := []struct {
		name         string
		providerType string
		wantName     string
		wantErr      bool
	}{
		{name: "explicit deepface", providerType: "deepface", wantName: "deepface"},
		{name: "empty defaults to deepface", providerType: "", wantName: "deepface"},
		{name: "mock", providerType: "mock", wantName: "mock"},
		{name: "unknown", providerType: "rekognition", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ProviderType: tt.providerType,
				DeepFaceURL:  "http://localhost:5005",
			}

			det, err := NewFaceDetector(cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown provider type")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, det.Name())
		})
	}
}

func TestNewFaceDetector_Types(t *testing.T) {
	det, err := NewFaceDetector(&config.Config{ProviderType: config.ProviderDeepFace})
	require.NoError(t, err)
	assert.IsType(t, &deepface.Provider{}, det)

	det, err = NewFaceDetector(&config.Config{ProviderType: config.ProviderMock})
	require.NoError(t, err)
	assert.IsType(t, &mock.Provider{}, det)
}
