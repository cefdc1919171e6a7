package kling

import (
	"context"
	"net/http"

	"github.com/maauso/kling-go/internal/transport"
)

// IdentifyFacesRequest points at the video whose faces should be detected.
// Exactly one of VideoID and VideoURL must be set.
type IdentifyFacesRequest struct {
	VideoID  string `json:"video_id,omitempty" validate:"required_without=VideoURL,excluded_with=VideoURL"`
	VideoURL string `json:"video_url,omitempty"`
}

// FaceChoice selects one detected face and the audio to sync onto it. Times
// are in milliseconds. Volumes are in [0, 2]; the server applies 1.0 when
// they are left nil.
type FaceChoice struct {
	FaceID              string   `json:"face_id" validate:"required"`
	AudioID             string   `json:"audio_id,omitempty" validate:"required_without=SoundFile,excluded_with=SoundFile"`
	SoundFile           string   `json:"sound_file,omitempty"`
	SoundStartTime      int64    `json:"sound_start_time" validate:"gte=0"`
	SoundEndTime        int64    `json:"sound_end_time" validate:"gtefield=SoundStartTime"`
	SoundInsertTime     int64    `json:"sound_insert_time" validate:"gte=0"`
	SoundVolume         *float64 `json:"sound_volume,omitempty" validate:"omitempty,gte=0,lte=2"`
	OriginalAudioVolume *float64 `json:"original_audio_volume,omitempty" validate:"omitempty,gte=0,lte=2"`
}

// LipSyncRequest syncs audio onto a face found by IdentifyFaces. The server
// accepts exactly one face per request.
type LipSyncRequest struct {
	SessionID   string       `json:"session_id" validate:"required"`
	FaceChoose  []FaceChoice `json:"face_choose" validate:"len=1,dive"`
	CallbackURL string       `json:"callback_url,omitempty"`
}

// LipSyncService runs the two-step identify-then-sync flow.
type LipSyncService struct {
	TaskAPI
	faces endpoint
}

// IdentifyFaces detects faces in a video and returns the session to pass to
// Create. The session lives server-side; only its id is kept here.
func (s *LipSyncService) IdentifyFaces(ctx context.Context, req *IdentifyFacesRequest) (*FaceSession, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	session, err := call[FaceSession](ctx, s.faces.doer, transport.Request{
		Method: http.MethodPost,
		Path:   s.faces.path,
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create submits a lip-sync task for a previously identified face.
func (s *LipSyncService) Create(ctx context.Context, req *LipSyncRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}

// NewLipSyncRequest builds a request that syncs choice within session.
func NewLipSyncRequest(session *FaceSession, choice FaceChoice) *LipSyncRequest {
	return &LipSyncRequest{
		SessionID:  session.SessionID,
		FaceChoose: []FaceChoice{choice},
	}
}
