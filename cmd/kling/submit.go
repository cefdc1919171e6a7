package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
	"github.com/maauso/kling-go/internal/bootstrap"
	"github.com/maauso/kling-go/internal/storage"
)

// autoExternalID asks for a generated external task id.
const autoExternalID = "auto"

// submitFlags are shared by every task-producing command.
type submitFlags struct {
	wait        bool
	download    bool
	callbackURL string
	externalID  string
}

func (f *submitFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.wait, "wait", false, "Wait for the task to finish")
	cmd.Flags().BoolVar(&f.download, "download", false, "Wait for the task and download its artifacts (implies --wait)")
	cmd.Flags().StringVar(&f.callbackURL, "callback-url", "", "URL notified by the server when the task changes state")
	cmd.Flags().StringVar(&f.externalID, "external-id", "", `Caller-supplied task id ("auto" generates one)`)
}

// registerNoExternalID registers the shared flags for endpoints without
// external task id support.
func (f *submitFlags) registerNoExternalID(cmd *cobra.Command) {
	f.register(cmd)
	_ = cmd.Flags().MarkHidden("external-id")
}

func (f *submitFlags) resolvedExternalID() string {
	if f.externalID == autoExternalID {
		return kling.NewExternalTaskID()
	}
	return f.externalID
}

type submitFunc func(ctx context.Context, client *kling.Client) (*kling.Task, kling.TaskAPI, error)

// runSubmission submits a task and optionally waits for and downloads it.
func (c *commandContext) runSubmission(cmd *cobra.Command, flags *submitFlags, submit submitFunc) error {
	return c.withDeps(func(deps *bootstrap.Dependencies) error {
		ctx := cmd.Context()

		t, api, err := submit(ctx, deps.Client)
		if err != nil {
			return err
		}
		deps.Logger.Info("task submitted",
			slog.String("task_id", t.ID),
			slog.String("status", string(t.Status)),
		)

		if (flags.wait || flags.download) && !t.Status.IsTerminal() {
			t, err = api.WaitForCompletion(ctx, t.ID, deps.Wait...)
			if err != nil {
				return err
			}
		}

		var saved []savedArtifact
		if flags.download {
			saved, err = downloadArtifacts(ctx, deps, t)
			if err != nil {
				return err
			}
		}
		return c.printTask(cmd, t, saved)
	})
}

func downloadArtifacts(ctx context.Context, deps *bootstrap.Dependencies, t *kling.Task) ([]savedArtifact, error) {
	urls := t.ArtifactURLs()
	saved := make([]savedArtifact, 0, len(urls))
	for i, url := range urls {
		s, err := saveURL(ctx, deps, url, storage.ObjectName(t.ID, i, url))
		if err != nil {
			return saved, err
		}
		saved = append(saved, s)
	}
	return saved, nil
}

func saveURL(ctx context.Context, deps *bootstrap.Dependencies, url, name string) (savedArtifact, error) {
	location, n, err := storage.Transfer(ctx, deps.Storage, name, func(ctx context.Context, w io.Writer) (int64, error) {
		return deps.Client.Download(ctx, url, w)
	})
	if err != nil {
		return savedArtifact{}, err
	}
	deps.Logger.Info("artifact saved",
		slog.String("url", url),
		slog.String("location", location),
		slog.String("size", humanize.Bytes(uint64(n))),
	)
	return savedArtifact{URL: url, Location: location, Bytes: n}, nil
}
