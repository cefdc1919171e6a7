package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var jsonFlag bool

	ctx := newCommandContext(&jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "kling",
		Short:         "Kling AI generative media CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newTextToVideoCommand(ctx))
	rootCmd.AddCommand(newImageToVideoCommand(ctx))
	rootCmd.AddCommand(newExtendCommand(ctx))
	rootCmd.AddCommand(newAvatarCommand(ctx))
	rootCmd.AddCommand(newEffectsCommand(ctx))
	rootCmd.AddCommand(newTextToAudioCommand(ctx))
	rootCmd.AddCommand(newVideoToAudioCommand(ctx))
	rootCmd.AddCommand(newTTSCommand(ctx))
	rootCmd.AddCommand(newLipSyncCommand(ctx))
	rootCmd.AddCommand(newTaskCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))

	return rootCmd
}
