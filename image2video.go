package kling

import (
	"context"

	"github.com/maauso/kling-go/internal/apierr"
)

// MaxMultiImages is the most reference images a multi-image task accepts.
const MaxMultiImages = 4

// ImageToVideoRequest animates one or several reference images.
//
// Set Image for a single reference frame. Set Images with two or more entries
// to generate from several subjects; the request is then sent to the
// multi-image endpoint, which ignores single-frame controls (ImageTail,
// CfgScale, masks and camera control are rejected there).
type ImageToVideoRequest struct {
	ModelName      string
	Image          string
	Images         []string
	ImageTail      string
	Prompt         string
	NegativePrompt string
	CfgScale       *float64
	Mode           string
	StaticMask     string
	DynamicMasks   []DynamicMask
	CameraControl  *CameraControl
	AspectRatio    string // Multi-image only
	Duration       string
	CallbackURL    string
	ExternalTaskID string
}

// IsMulti reports whether the request routes to the multi-image endpoint.
func (r *ImageToVideoRequest) IsMulti() bool {
	return len(r.Images) > 1
}

type imageToVideoBody struct {
	ModelName      string         `json:"model_name,omitempty"`
	Image          string         `json:"image,omitempty" validate:"required_without=ImageTail"`
	ImageTail      string         `json:"image_tail,omitempty"`
	Prompt         string         `json:"prompt,omitempty" validate:"max=2500"`
	NegativePrompt string         `json:"negative_prompt,omitempty" validate:"max=2500"`
	CfgScale       *float64       `json:"cfg_scale,omitempty" validate:"omitempty,gte=0,lte=1"`
	Mode           string         `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	StaticMask     string         `json:"static_mask,omitempty"`
	DynamicMasks   []DynamicMask  `json:"dynamic_masks,omitempty" validate:"max=6,dive"`
	CameraControl  *CameraControl `json:"camera_control,omitempty"`
	Duration       string         `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	CallbackURL    string         `json:"callback_url,omitempty"`
	ExternalTaskID string         `json:"external_task_id,omitempty"`
}

type imageInput struct {
	Image string `json:"image" validate:"required"`
}

type multiImageToVideoBody struct {
	ModelName      string       `json:"model_name,omitempty"`
	ImageList      []imageInput `json:"image_list" validate:"min=1,max=4,dive"`
	Prompt         string       `json:"prompt" validate:"required,max=2500"`
	NegativePrompt string       `json:"negative_prompt,omitempty" validate:"max=2500"`
	Mode           string       `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	Duration       string       `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	AspectRatio    string       `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1"`
	CallbackURL    string       `json:"callback_url,omitempty"`
	ExternalTaskID string       `json:"external_task_id,omitempty"`
}

// ImageToVideoService submits image-to-video tasks.
//
// The embedded TaskAPI reads single-image tasks; Multi reads tasks created
// from several images. Task ids are not shared between the two.
type ImageToVideoService struct {
	TaskAPI
	Multi TaskAPI
}

// Create submits an image-to-video task, routing to the multi-image endpoint
// when more than one image is supplied.
func (s *ImageToVideoService) Create(ctx context.Context, req *ImageToVideoRequest) (*Task, error) {
	if req == nil {
		return nil, requiredField("image")
	}
	if req.IsMulti() {
		body, err := multiBody(req)
		if err != nil {
			return nil, err
		}
		return s.Multi.ep.submit(ctx, body)
	}
	body, err := singleBody(req)
	if err != nil {
		return nil, err
	}
	return s.ep.submit(ctx, body)
}

// TaskAPIFor returns the query surface matching the endpoint req routes to.
func (s *ImageToVideoService) TaskAPIFor(req *ImageToVideoRequest) TaskAPI {
	if req != nil && req.IsMulti() {
		return s.Multi
	}
	return s.TaskAPI
}

func singleBody(req *ImageToVideoRequest) (*imageToVideoBody, error) {
	image := req.Image
	if len(req.Images) == 1 {
		if image != "" && image != req.Images[0] {
			return nil, conflictField("images", "image")
		}
		image = req.Images[0]
	}
	return &imageToVideoBody{
		ModelName:      req.ModelName,
		Image:          image,
		ImageTail:      req.ImageTail,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		CfgScale:       req.CfgScale,
		Mode:           req.Mode,
		StaticMask:     req.StaticMask,
		DynamicMasks:   req.DynamicMasks,
		CameraControl:  req.CameraControl,
		Duration:       req.Duration,
		CallbackURL:    req.CallbackURL,
		ExternalTaskID: req.ExternalTaskID,
	}, nil
}

func multiBody(req *ImageToVideoRequest) (*multiImageToVideoBody, error) {
	var fields []apierr.FieldError
	unsupported := func(name string, set bool) {
		if set {
			fields = append(fields, apierr.FieldError{
				Field:   name,
				Rule:    "excluded_with",
				Param:   "images",
				Message: name + " is not supported with multiple images",
			})
		}
	}
	unsupported("image", req.Image != "")
	unsupported("image_tail", req.ImageTail != "")
	unsupported("cfg_scale", req.CfgScale != nil)
	unsupported("static_mask", req.StaticMask != "")
	unsupported("dynamic_masks", len(req.DynamicMasks) > 0)
	unsupported("camera_control", req.CameraControl != nil)
	if len(fields) > 0 {
		return nil, &apierr.ValidationError{Fields: fields}
	}

	list := make([]imageInput, 0, len(req.Images))
	for _, img := range req.Images {
		list = append(list, imageInput{Image: img})
	}
	return &multiImageToVideoBody{
		ModelName:      req.ModelName,
		ImageList:      list,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Mode:           req.Mode,
		Duration:       req.Duration,
		AspectRatio:    req.AspectRatio,
		CallbackURL:    req.CallbackURL,
		ExternalTaskID: req.ExternalTaskID,
	}, nil
}

func conflictField(field, other string) error {
	return &apierr.ValidationError{Fields: []apierr.FieldError{{
		Field:   field,
		Rule:    "excluded_with",
		Param:   other,
		Message: field + " cannot be combined with " + other,
	}}}
}
