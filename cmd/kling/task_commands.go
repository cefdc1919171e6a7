package main

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
	"github.com/maauso/kling-go/internal/bootstrap"
	"github.com/maauso/kling-go/internal/storage"
)

// taskKinds maps the --kind flag to the endpoint family that owns a task.
var taskKinds = map[string]func(*kling.Client) kling.TaskAPI{
	"text2video":        func(c *kling.Client) kling.TaskAPI { return c.TextToVideo.TaskAPI },
	"image2video":       func(c *kling.Client) kling.TaskAPI { return c.ImageToVideo.TaskAPI },
	"multi-image2video": func(c *kling.Client) kling.TaskAPI { return c.ImageToVideo.Multi },
	"extend":            func(c *kling.Client) kling.TaskAPI { return c.VideoExtension.TaskAPI },
	"avatar":            func(c *kling.Client) kling.TaskAPI { return c.Avatar.TaskAPI },
	"lipsync":           func(c *kling.Client) kling.TaskAPI { return c.LipSync.TaskAPI },
	"effects":           func(c *kling.Client) kling.TaskAPI { return c.Effects.TaskAPI },
	"text2audio":        func(c *kling.Client) kling.TaskAPI { return c.TextToAudio.TaskAPI },
	"video2audio":       func(c *kling.Client) kling.TaskAPI { return c.VideoToAudio.TaskAPI },
}

func kindNames() []string {
	names := make([]string, 0, len(taskKinds))
	for k := range taskKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func resolveKind(kind string, client *kling.Client) (kling.TaskAPI, error) {
	fn, ok := taskKinds[kind]
	if !ok {
		return kling.TaskAPI{}, fmt.Errorf("unknown task kind %q (valid: %s)", kind, strings.Join(kindNames(), ", "))
	}
	return fn(client), nil
}

func newTaskCommand(ctx *commandContext) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Query submitted tasks",
	}
	cmd.PersistentFlags().StringVarP(&kind, "kind", "k", "text2video", "Task kind ("+strings.Join(kindNames(), ", ")+")")

	cmd.AddCommand(newTaskGetCommand(ctx, &kind))
	cmd.AddCommand(newTaskListCommand(ctx, &kind))
	cmd.AddCommand(newTaskWaitCommand(ctx, &kind))
	return cmd
}

func newTaskGetCommand(ctx *commandContext, kind *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				api, err := resolveKind(*kind, deps.Client)
				if err != nil {
					return err
				}
				t, err := api.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return ctx.printTask(cmd, t, nil)
			})
		},
	}
}

func newTaskListCommand(ctx *commandContext, kind *string) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of one kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				api, err := resolveKind(*kind, deps.Client)
				if err != nil {
					return err
				}
				tasks, err := api.List(cmd.Context(), page, size)
				if err != nil {
					return err
				}
				return ctx.printTaskList(cmd, tasks)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", kling.DefaultPageNum, "Page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", kling.DefaultPageSize, "Page size")

	return cmd
}

func newTaskWaitCommand(ctx *commandContext, kind *string) *cobra.Command {
	var download bool

	cmd := &cobra.Command{
		Use:   "wait <task-id>...",
		Short: "Wait for one or more tasks to finish",
		Long: "Wait for tasks to reach a terminal status. Several ids are polled\n" +
			"concurrently and the command fails as soon as one of them fails.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				api, err := resolveKind(*kind, deps.Client)
				if err != nil {
					return err
				}

				waits := make([]kling.WaitFunc, 0, len(args))
				for _, id := range args {
					waits = append(waits, api.Waiter(id, deps.Wait...))
				}
				tasks, err := kling.WaitAll(cmd.Context(), waits...)
				if err != nil {
					return err
				}

				for _, t := range tasks {
					var saved []savedArtifact
					if download {
						saved, err = downloadArtifacts(cmd.Context(), deps, t)
						if err != nil {
							return err
						}
					}
					if err := ctx.printTask(cmd, t, saved); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&download, "download", false, "Download artifacts of the finished tasks")

	return cmd
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Save a result artifact URL to the configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]
			if name == "" {
				name = defaultArtifactName(rawURL)
			}
			return ctx.withDeps(func(deps *bootstrap.Dependencies) error {
				saved, err := saveURL(cmd.Context(), deps, rawURL, name)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, saved)
				}
				fmt.Fprintln(cmd.OutOrStdout(), saved.Location)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Object name (defaults to the URL's file name)")

	return cmd
}

func defaultArtifactName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return storage.ObjectName("artifact", 0, rawURL)
}

