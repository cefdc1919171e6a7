package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
	"github.com/maauso/kling-go/internal/bootstrap"
)

func newTextToAudioCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.TextToAudioRequest

	cmd := &cobra.Command{
		Use:   "text2audio",
		Short: "Generate a sound effect from a text prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CallbackURL = flags.callbackURL
			req.ExternalTaskID = flags.resolvedExternalID()

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.TextToAudio.Create(c, &req)
				return t, client.TextToAudio.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVarP(&req.Prompt, "prompt", "p", "", "Sound description")
	cmd.Flags().Float64Var(&req.Duration, "duration", 5, "Duration in seconds (3 to 10)")
	_ = cmd.MarkFlagRequired("prompt")
	flags.register(cmd)

	return cmd
}

func newVideoToAudioCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var req kling.VideoToAudioRequest
	var asmr bool

	cmd := &cobra.Command{
		Use:   "video2audio",
		Short: "Generate a soundtrack for a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("asmr") {
				req.ASMRMode = kling.Ptr(asmr)
			}
			req.CallbackURL = flags.callbackURL
			req.ExternalTaskID = flags.resolvedExternalID()

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.VideoToAudio.Create(c, &req)
				return t, client.VideoToAudio.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVar(&req.VideoID, "video-id", "", "Id of a generated video")
	cmd.Flags().StringVar(&req.VideoURL, "video-url", "", "URL of an uploaded video")
	cmd.Flags().StringVar(&req.SoundEffectPrompt, "sound-effect-prompt", "", "Sound effect description")
	cmd.Flags().StringVar(&req.BGMPrompt, "bgm-prompt", "", "Background music description")
	cmd.Flags().BoolVar(&asmr, "asmr", false, "Enable ASMR mode")
	cmd.MarkFlagsMutuallyExclusive("video-id", "video-url")
	cmd.MarkFlagsOneRequired("video-id", "video-url")
	flags.register(cmd)

	return cmd
}

func newTTSCommand(ctx *commandContext) *cobra.Command {
	var req kling.TTSRequest
	var speed float64
	var download bool

	cmd := &cobra.Command{
		Use:   "tts <text>",
		Short: "Synthesize speech",
		Long: "Synthesize speech. The call is synchronous; the returned task already\n" +
			"carries the audio, and its audio id can be passed to avatar or lipsync.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Text = args[0]
			if cmd.Flags().Changed("speed") {
				req.VoiceSpeed = kling.Ptr(speed)
			}

			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				t, err := deps.Client.TTS.Create(cmd.Context(), &req)
				if err != nil {
					return err
				}
				var saved []savedArtifact
				if download {
					saved, err = downloadArtifacts(cmd.Context(), deps, t)
					if err != nil {
						return err
					}
				}
				return ctx.printTask(cmd, t, saved)
			})
		},
	}

	cmd.Flags().StringVar(&req.VoiceID, "voice-id", "", "Voice id")
	cmd.Flags().StringVar(&req.VoiceLanguage, "language", kling.VoiceEnglish, "Voice language (zh or en)")
	cmd.Flags().Float64Var(&speed, "speed", 1, "Speaking rate between 0.8 and 2")
	cmd.Flags().BoolVar(&download, "download", false, "Download the synthesized audio")
	_ = cmd.MarkFlagRequired("voice-id")

	return cmd
}
