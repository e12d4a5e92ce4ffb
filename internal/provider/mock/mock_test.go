package mock

import (
	"context"
	"testing"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(fill byte) []byte {
	img := make([]byte, 5000)
	for i := range img {
		img[i] = fill
	}
	return img
}

func TestProvider_DetectFaces(t *testing.T) {
	p := New()
	ctx := context.Background()

	tests := []struct {
		name      string
		image     []byte
		wantFaces int
	}{
		{name: "valid image", image: image(1), wantFaces: 1},
		{name: "image too small has no face", image: make([]byte, 100), wantFaces: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faces, err := p.DetectFaces(ctx, tt.image)

			require.NoError(t, err)
			require.NotNil(t, faces)
			assert.Len(t, faces, tt.wantFaces)
			for _, f := range faces {
				assert.Len(t, f.Descriptor, domain.DescriptorSize)
			}
		})
	}
}

func TestProvider_DetectFaces_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().DetectFaces(ctx, image(1))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateDescriptor(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, generateDescriptor(image(7)), generateDescriptor(image(7)))
	})

	t.Run("unit length", func(t *testing.T) {
		d := generateDescriptor(image(3))
		zero := make(domain.DescriptorVector, domain.DescriptorSize)

		dist, err := matching.Distance(d, zero)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, dist, 1e-9)
	})

	t.Run("different images are not duplicates", func(t *testing.T) {
		dist, err := matching.Distance(generateDescriptor(image(1)), generateDescriptor(image(2)))
		require.NoError(t, err)
		assert.Greater(t, dist, domain.DefaultSimilarityThreshold)
	})
}
