package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
)

func newTextToVideoCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.TextToVideoRequest
	var cfgScale float64
	var camera string

	cmd := &cobra.Command{
		Use:   "text2video",
		Short: "Generate a video from a text prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cfg-scale") {
				req.CfgScale = kling.Ptr(cfgScale)
			}
			if camera != "" {
				req.CameraControl = &kling.CameraControl{Type: camera}
			}
			req.CallbackURL = flags.callbackURL
			req.ExternalTaskID = flags.resolvedExternalID()

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.TextToVideo.Create(c, &req)
				return t, client.TextToVideo.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVarP(&req.Prompt, "prompt", "p", "", "Positive text prompt")
	cmd.Flags().StringVar(&req.NegativePrompt, "negative-prompt", "", "Things to keep out of the video")
	cmd.Flags().StringVar(&req.ModelName, "model", "", "Model name, e.g. kling-v1-6")
	cmd.Flags().StringVar(&req.Mode, "mode", "", "Generation mode (std or pro)")
	cmd.Flags().StringVar(&req.AspectRatio, "aspect-ratio", "", "Aspect ratio (16:9, 9:16 or 1:1)")
	cmd.Flags().StringVar(&req.Duration, "duration", "", "Duration in seconds (5 or 10)")
	cmd.Flags().Float64Var(&cfgScale, "cfg-scale", 0.5, "Prompt adherence between 0 and 1")
	cmd.Flags().StringVar(&camera, "camera", "", "Predefined camera movement, e.g. forward_up")
	_ = cmd.MarkFlagRequired("prompt")
	flags.register(cmd)

	return cmd
}

func newImageToVideoCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.ImageToVideoRequest
	var cfgScale float64

	cmd := &cobra.Command{
		Use:   "image2video",
		Short: "Animate one or more reference images",
		Long: "Animate a reference image. Pass --image more than once to generate from\n" +
			"several subjects through the multi-image endpoint.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cfg-scale") {
				req.CfgScale = kling.Ptr(cfgScale)
			}
			req.CallbackURL = flags.callbackURL
			req.ExternalTaskID = flags.resolvedExternalID()

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.ImageToVideo.Create(c, &req)
				return t, client.ImageToVideo.TaskAPIFor(&req), err
			})
		},
	}

	cmd.Flags().StringArrayVarP(&req.Images, "image", "i", nil, "Reference image URL or Base64 (repeatable)")
	cmd.Flags().StringVar(&req.ImageTail, "image-tail", "", "End frame image URL or Base64")
	cmd.Flags().StringVarP(&req.Prompt, "prompt", "p", "", "Positive text prompt")
	cmd.Flags().StringVar(&req.NegativePrompt, "negative-prompt", "", "Things to keep out of the video")
	cmd.Flags().StringVar(&req.ModelName, "model", "", "Model name, e.g. kling-v1-6")
	cmd.Flags().StringVar(&req.Mode, "mode", "", "Generation mode (std or pro)")
	cmd.Flags().StringVar(&req.AspectRatio, "aspect-ratio", "", "Aspect ratio, multi-image only")
	cmd.Flags().StringVar(&req.Duration, "duration", "", "Duration in seconds (5 or 10)")
	cmd.Flags().Float64Var(&cfgScale, "cfg-scale", 0.5, "Prompt adherence between 0 and 1")
	flags.register(cmd)

	return cmd
}

func newExtendCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.VideoExtensionRequest
	var cfgScale float64

	cmd := &cobra.Command{
		Use:   "extend <video-id>",
		Short: "Extend a generated video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.VideoID = args[0]
			if cmd.Flags().Changed("cfg-scale") {
				req.CfgScale = kling.Ptr(cfgScale)
			}
			req.CallbackURL = flags.callbackURL

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.VideoExtension.Create(c, &req)
				return t, client.VideoExtension.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVarP(&req.Prompt, "prompt", "p", "", "Text prompt for the continuation")
	cmd.Flags().StringVar(&req.NegativePrompt, "negative-prompt", "", "Things to keep out of the video")
	cmd.Flags().Float64Var(&cfgScale, "cfg-scale", 0.5, "Prompt adherence between 0 and 1")
	flags.registerNoExternalID(cmd)

	return cmd
}

func newAvatarCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.AvatarRequest

	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Animate a portrait with an audio track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CallbackURL = flags.callbackURL
			req.ExternalTaskID = flags.resolvedExternalID()

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.Avatar.Create(c, &req)
				return t, client.Avatar.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVarP(&req.Image, "image", "i", "", "Portrait image URL or Base64")
	cmd.Flags().StringVar(&req.AudioID, "audio-id", "", "Audio id from a TTS result")
	cmd.Flags().StringVar(&req.SoundFile, "sound-file", "", "Audio URL or Base64")
	cmd.Flags().StringVarP(&req.Prompt, "prompt", "p", "", "Text prompt")
	cmd.Flags().StringVar(&req.Mode, "mode", "", "Generation mode (std or pro)")
	_ = cmd.MarkFlagRequired("image")
	cmd.MarkFlagsMutuallyExclusive("audio-id", "sound-file")
	cmd.MarkFlagsOneRequired("audio-id", "sound-file")
	flags.register(cmd)

	return cmd
}

func newEffectsCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var images []string
	var duration, model, mode string

	cmd := &cobra.Command{
		Use:   "effects <scene>",
		Short: "Apply a named video effect scene",
		Long: "Apply a named effect scene such as pet_lion or hug. Single-subject scenes\n" +
			"take one --image; dual-character scenes take two.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input kling.EffectInput
			if len(images) > 1 {
				input = kling.DualCharacterEffect{ModelName: model, Mode: mode, Images: images, Duration: duration}
			} else {
				var image string
				if len(images) == 1 {
					image = images[0]
				}
				input = kling.SingleImageEffect{Image: image, Duration: duration}
			}
			req := &kling.EffectsRequest{
				EffectScene:    args[0],
				Input:          input,
				CallbackURL:    flags.callbackURL,
				ExternalTaskID: flags.resolvedExternalID(),
			}

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.Effects.Create(c, req)
				return t, client.Effects.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringArrayVarP(&images, "image", "i", nil, "Subject image URL or Base64 (repeat for dual scenes)")
	cmd.Flags().StringVar(&duration, "duration", kling.Duration5s, "Duration in seconds (5 or 10)")
	cmd.Flags().StringVar(&model, "model", "", "Model name for dual scenes")
	cmd.Flags().StringVar(&mode, "mode", "", "Generation mode for dual scenes (std or pro)")
	_ = cmd.MarkFlagRequired("image")
	flags.register(cmd)

	return cmd
}
