package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/maauso/kling-go"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// savedArtifact is one downloaded result file.
type savedArtifact struct {
	URL      string `json:"url"`
	Location string `json:"location"`
	Bytes    int64  `json:"bytes"`
}

type taskOutput struct {
	Task      *kling.Task     `json:"task"`
	Artifacts []savedArtifact `json:"artifacts,omitempty"`
}

func (c *commandContext) printTask(cmd *cobra.Command, t *kling.Task, saved []savedArtifact) error {
	if c.jsonOutput() {
		return writeJSON(cmd, taskOutput{Task: t, Artifacts: saved})
	}

	rows := [][]string{
		{"Task ID", t.ID},
		{"Status", string(t.Status)},
	}
	if t.StatusMsg != "" {
		rows = append(rows, []string{"Message", t.StatusMsg})
	}
	if t.Info.ExternalTaskID != "" {
		rows = append(rows, []string{"External ID", t.Info.ExternalTaskID})
	}
	if t.CreatedAt > 0 {
		rows = append(rows, []string{"Created", formatTime(t.Created())})
	}
	for _, v := range t.Result.Videos {
		rows = append(rows, []string{"Video", v.URL + durationSuffix(v.Duration)})
	}
	for _, a := range t.Result.Audios {
		rows = append(rows, []string{"Audio", firstNonEmpty(a.URL, a.URLMP3, a.URLWAV) + durationSuffix(a.Duration)})
	}
	for _, s := range saved {
		rows = append(rows, []string{"Saved", fmt.Sprintf("%s (%s)", s.Location, humanize.Bytes(uint64(s.Bytes)))})
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
	return nil
}

func (c *commandContext) printTaskList(cmd *cobra.Command, tasks []kling.Task) error {
	if c.jsonOutput() {
		return writeJSON(cmd, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		created := ""
		if t.CreatedAt > 0 {
			created = humanize.Time(t.Created())
		}
		rows = append(rows, []string{
			t.ID,
			string(t.Status),
			created,
			strconv.Itoa(len(t.ArtifactURLs())),
		})
	}
	table := renderTable(
		[]string{"Task ID", "Status", "Created", "Artifacts"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
	fmt.Fprint(cmd.OutOrStdout(), table)
	return nil
}

func (c *commandContext) printFaces(cmd *cobra.Command, session *kling.FaceSession) error {
	if c.jsonOutput() {
		return writeJSON(cmd, session)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Session: %s\n", session.SessionID)
	if len(session.Faces) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No faces detected")
		return nil
	}

	rows := make([][]string, 0, len(session.Faces))
	for _, f := range session.Faces {
		rows = append(rows, []string{
			f.ID,
			strconv.FormatInt(f.StartTime, 10),
			strconv.FormatInt(f.EndTime, 10),
			f.ImageURL,
		})
	}
	table := renderTable(
		[]string{"Face ID", "Start (ms)", "End (ms)", "Preview"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
	fmt.Fprint(cmd.OutOrStdout(), table)
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.DateTime) + " (" + humanize.Time(t) + ")"
}

func durationSuffix(d string) string {
	if d == "" {
		return ""
	}
	return " [" + d + "s]"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
