package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
	"github.com/maauso/kling-go/internal/bootstrap"
)

func newLipSyncCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lipsync",
		Short: "Sync audio onto a face in a video",
		Long: "Lip sync runs in two steps. First identify the faces in a video, then\n" +
			"create a task for one face using the returned session id.",
	}
	cmd.AddCommand(newLipSyncIdentifyCommand(ctx))
	cmd.AddCommand(newLipSyncCreateCommand(ctx))
	return cmd
}

func newLipSyncIdentifyCommand(ctx *commandContext) *cobra.Command {
	var req kling.IdentifyFacesRequest

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Detect faces in a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				session, err := deps.Client.LipSync.IdentifyFaces(cmd.Context(), &req)
				if err != nil {
					return err
				}
				return ctx.printFaces(cmd, session)
			})
		},
	}

	cmd.Flags().StringVar(&req.VideoID, "video-id", "", "Id of a generated video")
	cmd.Flags().StringVar(&req.VideoURL, "video-url", "", "URL of an uploaded video")
	cmd.MarkFlagsMutuallyExclusive("video-id", "video-url")
	cmd.MarkFlagsOneRequired("video-id", "video-url")

	return cmd
}

func newLipSyncCreateCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags
	var sessionID string
	var choice kling.FaceChoice
	var volume, originalVolume float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lip-sync task for an identified face",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("volume") {
				choice.SoundVolume = kling.Ptr(volume)
			}
			if cmd.Flags().Changed("original-volume") {
				choice.OriginalAudioVolume = kling.Ptr(originalVolume)
			}
			req := kling.NewLipSyncRequest(&kling.FaceSession{SessionID: sessionID}, choice)
			req.CallbackURL = flags.callbackURL

			return ctx.runSubmission(cmd, &flags, func(c context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error) {
				t, err := client.LipSync.Create(c, req)
				return t, client.LipSync.TaskAPI, err
			})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session id from lipsync identify")
	cmd.Flags().StringVar(&choice.FaceID, "face-id", "", "Face id from lipsync identify")
	cmd.Flags().StringVar(&choice.AudioID, "audio-id", "", "Audio id from a TTS result")
	cmd.Flags().StringVar(&choice.SoundFile, "sound-file", "", "Audio URL or Base64")
	cmd.Flags().Int64Var(&choice.SoundStartTime, "start", 0, "Audio crop start in milliseconds")
	cmd.Flags().Int64Var(&choice.SoundEndTime, "end", 0, "Audio crop end in milliseconds")
	cmd.Flags().Int64Var(&choice.SoundInsertTime, "insert", 0, "Video offset to insert the audio at, in milliseconds")
	cmd.Flags().Float64Var(&volume, "volume", 1, "Synced audio volume between 0 and 2")
	cmd.Flags().Float64Var(&originalVolume, "original-volume", 1, "Original audio volume between 0 and 2")
	_ = cmd.MarkFlagRequired("session-id")
	_ = cmd.MarkFlagRequired("face-id")
	cmd.MarkFlagsMutuallyExclusive("audio-id", "sound-file")
	cmd.MarkFlagsOneRequired("audio-id", "sound-file")
	flags.registerNoExternalID(cmd)

	return cmd
}
