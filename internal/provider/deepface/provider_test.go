package deepface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderImplementsInterface(t *testing.T) {
	var _ provider.FaceDetector = (*Provider)(nil)
}

func TestNewProvider(t *testing.T) {
	p := NewProvider(DefaultConfig())

	require.NotNil(t, p)
	require.NotNil(t, p.client)
	assert.Equal(t, "deepface", p.Name())
}

func embedding(v float64) []float64 {
	e := make([]float64, domain.DescriptorSize)
	for i := range e {
		e[i] = v
	}
	return e
}

func TestProvider_DetectFaces(t *testing.T) {
	tests := []struct {
		name         string
		serverBody   interface{}
		serverStatus int
		wantCount    int
		wantErr      error
		validate     func(*testing.T, []provider.DetectedFace)
	}{
		{
			name: "single face with landmarks",
			serverBody: RepresentResponse{
				Results: []RepresentResult{
					{
						Embedding:      embedding(0.1),
						FacialArea:     FacialArea{X: 10, Y: 20, W: 200, H: 210, LeftEye: []int{60, 80}, RightEye: []int{140, 82}},
						FaceConfidence: 0.97,
					},
				},
			},
			serverStatus: http.StatusOK,
			wantCount:    1,
			validate: func(t *testing.T, faces []provider.DetectedFace) {
				f := faces[0]
				assert.Equal(t, domain.FaceBox{X: 10, Y: 20, Width: 200, Height: 210}, f.Box)
				assert.Len(t, f.Descriptor, domain.DescriptorSize)
				assert.Equal(t, []int{60, 80}, f.Landmarks["left_eye"])
				assert.Equal(t, []int{140, 82}, f.Landmarks["right_eye"])
				assert.InDelta(t, 0.97, f.Confidence, 1e-9)
			},
		},
		{
			name: "multiple faces keep order",
			serverBody: RepresentResponse{
				Results: []RepresentResult{
					{Embedding: embedding(0.1), FacialArea: FacialArea{X: 10, Y: 10, W: 100, H: 100}},
					{Embedding: embedding(0.2), FacialArea: FacialArea{X: 200, Y: 10, W: 100, H: 100}},
				},
			},
			serverStatus: http.StatusOK,
			wantCount:    2,
			validate: func(t *testing.T, faces []provider.DetectedFace) {
				assert.Equal(t, 10.0, faces[0].Box.X)
				assert.Equal(t, 200.0, faces[1].Box.X)
				assert.Nil(t, faces[0].Landmarks)
			},
		},
		{
			name:         "empty results",
			serverBody:   RepresentResponse{Results: []RepresentResult{}},
			serverStatus: http.StatusOK,
			wantCount:    0,
		},
		{
			name:         "face could not be detected maps to empty result",
			serverBody:   map[string]string{"error": "Exception while representing: Face could not be detected in numpy array.Please confirm that the picture is a face photo"},
			serverStatus: http.StatusBadRequest,
			wantCount:    0,
		},
		{
			name:         "unreadable image is rejected",
			serverBody:   map[string]string{"error": "Exception while loading image: cannot identify image file"},
			serverStatus: http.StatusBadRequest,
			wantErr:      provider.ErrImageRejected,
		},
		{
			name:         "missing embedding",
			serverBody:   RepresentResponse{Results: []RepresentResult{{FacialArea: FacialArea{W: 10, H: 10}}}},
			serverStatus: http.StatusOK,
			wantErr:      ErrInvalidResponse,
		},
		{
			name:         "server error",
			serverBody:   map[string]string{"error": "boom"},
			serverStatus: http.StatusInternalServerError,
			wantErr:      ErrDeepFaceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req RepresentRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.True(t, strings.HasPrefix(req.Img, "data:"), "image must be sent as a data URI")

				w.WriteHeader(tt.serverStatus)
				_ = json.NewEncoder(w).Encode(tt.serverBody)
			}))
			defer server.Close()

			config := testConfig(server.URL)
			config.RetryCount = 0

			p := NewProvider(config)
			faces, err := p.DetectFaces(context.Background(), []byte("test-image"))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, faces)
			assert.Len(t, faces, tt.wantCount)
			if tt.validate != nil {
				tt.validate(t, faces)
			}
		})
	}
}

func TestProvider_DetectFaces_EmptyImage(t *testing.T) {
	p := NewProvider(DefaultConfig())

	_, err := p.DetectFaces(context.Background(), nil)

	assert.ErrorIs(t, err, provider.ErrImageRejected)
}

func TestIsNoFaceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"json body", &StatusError{StatusCode: 400, Body: `{"error":"Face could not be detected"}`}, true},
		{"plain body", &StatusError{StatusCode: 400, Body: "face could not be detected in numpy array"}, true},
		{"other client error", &StatusError{StatusCode: 400, Body: `{"error":"img is required"}`}, false},
		{"server error with same text", &StatusError{StatusCode: 500, Body: "face could not be detected"}, false},
		{"not a status error", assert.AnError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNoFaceError(tt.err))
		})
	}
}
