package service

import (
	"context"
	"errors"
	"time"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/observability"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
)

// detectFaces runs the detector and maps its failures to domain errors.
// An empty result is returned as domain.ErrNoFaceDetected.
func detectFaces(ctx context.Context, detector provider.FaceDetector, image []byte) ([]provider.DetectedFace, error) {
	start := time.Now()
	faces, err := detector.DetectFaces(ctx, image)
	observability.DetectionDuration.WithLabelValues(detector.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, provider.ErrImageRejected):
			return nil, domain.ErrInvalidImage.WithError(err)
		default:
			return nil, domain.ErrDetectorUnavailable.WithError(err)
		}
	}

	observability.FacesDetected.Observe(float64(len(faces)))

	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	return faces, nil
}
