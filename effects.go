package kling

import "context"

// EffectInput is the scene-dependent payload of an effects request. It is
// implemented by SingleImageEffect and DualCharacterEffect.
type EffectInput interface {
	effectInput()
}

// SingleImageEffect applies a single-subject scene to one image.
type SingleImageEffect struct {
	Image    string `json:"image" validate:"required"`
	Duration string `json:"duration" validate:"required,oneof=5 10"`
}

// DualCharacterEffect applies a two-subject scene. Images holds the left and
// right subjects.
type DualCharacterEffect struct {
	ModelName string   `json:"model_name,omitempty"`
	Mode      string   `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	Images    []string `json:"images" validate:"len=2,dive,required"`
	Duration  string   `json:"duration" validate:"required,oneof=5 10"`
}

func (SingleImageEffect) effectInput() {}
func (DualCharacterEffect) effectInput() {}

// EffectsRequest applies a named scene. The scene set is defined server-side,
// so EffectScene is not checked beyond being present.
type EffectsRequest struct {
	EffectScene    string      `json:"effect_scene" validate:"required"`
	Input          EffectInput `json:"input" validate:"required"`
	CallbackURL    string      `json:"callback_url,omitempty"`
	ExternalTaskID string      `json:"external_task_id,omitempty"`
}

// EffectsService submits video effect tasks.
type EffectsService struct {
	TaskAPI
}

// Create submits an effects task.
func (s *EffectsService) Create(ctx context.Context, req *EffectsRequest) (*Task, error) {
	return s.ep.submit(ctx, req)
}
