package kling

import "context"

// TextToAudioRequest generates a sound effect from a prompt.
type TextToAudioRequest struct {
	Prompt         string  `json:"prompt" validate:"required,max=200"`
	Duration       float64 `json:"duration" validate:"gte=3,lte=10"`
	ExternalTaskID string  `json:"external_task_id,omitempty"`
	CallbackURL    string  `json:"callback_url,omitempty"`
}

// TextToAudioService submits text-to-audio tasks.
type TextToAudioService struct {
	TaskAPI
}

// Create submits a text-to-audio task.
func (s *TextToAudioService) Create(ctx context.Context, req *TextToAudioRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}

// VideoToAudioRequest generates a soundtrack for a video. Exactly one of
// VideoID and VideoURL must be set.
type VideoToAudioRequest struct {
	VideoID           string `json:"video_id,omitempty" validate:"required_without=VideoURL,excluded_with=VideoURL"`
	VideoURL          string `json:"video_url,omitempty"`
	SoundEffectPrompt string `json:"sound_effect_prompt,omitempty" validate:"max=200"`
	BGMPrompt         string `json:"bgm_prompt,omitempty" validate:"max=200"`
	ASMRMode          *bool  `json:"asmr_mode,omitempty"`
	ExternalTaskID    string `json:"external_task_id,omitempty"`
	CallbackURL       string `json:"callback_url,omitempty"`
}

// VideoToAudioService submits video-to-audio tasks.
type VideoToAudioService struct {
	TaskAPI
}

// Create submits a video-to-audio task.
func (s *VideoToAudioService) Create(ctx context.Context, req *VideoToAudioRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}

// Voice languages for TTS.
const (
	VoiceChinese = "zh"
	VoiceEnglish = "en"
)

// TTSRequest synthesizes speech.
type TTSRequest struct {
	Text          string   `json:"text" validate:"required,max=1000"`
	VoiceID       string   `json:"voice_id" validate:"required"`
	VoiceLanguage string   `json:"voice_language" validate:"required,oneof=zh en"`
	VoiceSpeed    *float64 `json:"voice_speed,omitempty" validate:"omitempty,gte=0.8,lte=2"`
}

// TTSService synthesizes speech synchronously. The returned task already
// carries its audio, so there is nothing to poll.
type TTSService struct {
	ep endpoint
}

// Create synthesizes speech and returns the finished task.
func (s *TTSService) Create(ctx context.Context, req *TTSRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}
