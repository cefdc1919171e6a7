package kling

import "context"

// Generation modes.
const (
	ModeStandard     = "std"
	ModeProfessional = "pro"
)

// Aspect ratios.
const (
	AspectRatio16x9 = "16:9"
	AspectRatio9x16 = "9:16"
	AspectRatio1x1  = "1:1"
)

// Video durations in seconds, sent as strings.
const (
	Duration5s  = "5"
	Duration10s = "10"
)

// Camera movement types. CameraSimple requires a CameraConfig; the others are
// predefined movements and take none.
const (
	CameraSimple           = "simple"
	CameraDownBack         = "down_back"
	CameraForwardUp        = "forward_up"
	CameraRightTurnForward = "right_turn_forward"
	CameraLeftTurnForward  = "left_turn_forward"
)

// CameraControl describes camera movement for a generated video.
type CameraControl struct {
	Type   string        `json:"type,omitempty" validate:"omitempty,oneof=simple down_back forward_up right_turn_forward left_turn_forward"`
	Config *CameraConfig `json:"config,omitempty" validate:"required_if=Type simple"`
}

// CameraConfig holds the simple-movement axes, each in [-10, 10].
type CameraConfig struct {
	Horizontal *float64 `json:"horizontal,omitempty" validate:"omitempty,gte=-10,lte=10"`
	Vertical   *float64 `json:"vertical,omitempty" validate:"omitempty,gte=-10,lte=10"`
	Pan        *float64 `json:"pan,omitempty" validate:"omitempty,gte=-10,lte=10"`
	Tilt       *float64 `json:"tilt,omitempty" validate:"omitempty,gte=-10,lte=10"`
	Roll       *float64 `json:"roll,omitempty" validate:"omitempty,gte=-10,lte=10"`
	Zoom       *float64 `json:"zoom,omitempty" validate:"omitempty,gte=-10,lte=10"`
}

// DynamicMask is a motion-brush region with its movement path.
type DynamicMask struct {
	Mask         string            `json:"mask" validate:"required"`
	Trajectories []TrajectoryPoint `json:"trajectories" validate:"min=2,max=77"`
}

// TrajectoryPoint is one coordinate of a motion path.
type TrajectoryPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TextToVideoRequest generates a video from a prompt.
type TextToVideoRequest struct {
	ModelName      string         `json:"model_name,omitempty"`
	Prompt         string         `json:"prompt" validate:"required,max=2500"`
	NegativePrompt string         `json:"negative_prompt,omitempty" validate:"max=2500"`
	CfgScale       *float64       `json:"cfg_scale,omitempty" validate:"omitempty,gte=0,lte=1"`
	Mode           string         `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	CameraControl  *CameraControl `json:"camera_control,omitempty"`
	AspectRatio    string         `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1"`
	Duration       string         `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	CallbackURL    string         `json:"callback_url,omitempty"`
	ExternalTaskID string         `json:"external_task_id,omitempty"`
}

// TextToVideoService submits text-to-video tasks.
type TextToVideoService struct {
	TaskAPI
}

// Create submits a text-to-video task.
func (s *TextToVideoService) Create(ctx context.Context, req *TextToVideoRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}

// VideoExtensionRequest extends a previously generated video.
type VideoExtensionRequest struct {
	VideoID        string   `json:"video_id" validate:"required"`
	Prompt         string   `json:"prompt,omitempty" validate:"max=2500"`
	NegativePrompt string   `json:"negative_prompt,omitempty" validate:"max=2500"`
	CfgScale       *float64 `json:"cfg_scale,omitempty" validate:"omitempty,gte=0,lte=1"`
	CallbackURL    string   `json:"callback_url,omitempty"`
}

// VideoExtensionService submits video extension tasks.
type VideoExtensionService struct {
	TaskAPI
}

// Create submits a video extension task.
func (s *VideoExtensionService) Create(ctx context.Context, req *VideoExtensionRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}

// AvatarRequest animates a portrait from an audio track. Exactly one of
// AudioID and SoundFile should be set.
type AvatarRequest struct {
	Image          string `json:"image" validate:"required"`
	AudioID        string `json:"audio_id,omitempty" validate:"required_without=SoundFile,excluded_with=SoundFile"`
	SoundFile      string `json:"sound_file,omitempty"`
	Prompt         string `json:"prompt,omitempty" validate:"max=2500"`
	Mode           string `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	CallbackURL    string `json:"callback_url,omitempty"`
	ExternalTaskID string `json:"external_task_id,omitempty"`
}

// AvatarService submits avatar tasks.
type AvatarService struct {
	TaskAPI
}

// Create submits an avatar task.
func (s *AvatarService) Create(ctx context.Context, req *AvatarRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}
