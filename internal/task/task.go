// Package task holds the transient task snapshots returned by the Kling API.
// The client never mutates a snapshot; a fresh one is fetched on every status call.
package task

import (
	"strconv"
	"time"
)

// Status is the raw task_status string reported by the server.
type Status string

// Server status vocabulary.
const (
	StatusSubmitted  Status = "submitted"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeed"
	StatusFailed     Status = "failed"
)

// Phase is the closed lifecycle state a Status maps to.
type Phase int

const (
	// PhasePending covers submitted, processing and any unrecognised status.
	PhasePending Phase = iota
	// PhaseSucceeded is terminal success.
	PhaseSucceeded
	// PhaseFailed is terminal failure.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Phase maps the status onto the lifecycle. Unknown strings are pending so that
// new server-side states keep the poller waiting instead of failing.
func (s Status) Phase() Phase {
	switch s {
	case StatusSucceeded:
		return PhaseSucceeded
	case StatusFailed:
		return PhaseFailed
	default:
		return PhasePending
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s.Phase() != PhasePending
}

// Task is one snapshot of a server-tracked generation task.
type Task struct {
	ID        string `json:"task_id"`
	Status    Status `json:"task_status"`
	StatusMsg string `json:"task_status_msg,omitempty"`
	Info      Info   `json:"task_info"`
	CreatedAt int64  `json:"created_at,omitempty"` // Unix milliseconds
	UpdatedAt int64  `json:"updated_at,omitempty"` // Unix milliseconds
	Result    Result `json:"task_result"`
}

// Info carries submission metadata echoed back by the server.
type Info struct {
	ExternalTaskID string `json:"external_task_id,omitempty"`
}

// Result holds the artifacts produced by a succeeded task.
type Result struct {
	Videos []Video `json:"videos,omitempty"`
	Audios []Audio `json:"audios,omitempty"`
}

// Video is one generated video artifact.
type Video struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Duration string `json:"duration,omitempty"` // Seconds, as a decimal string
}

// DurationSeconds parses Duration.
func (v Video) DurationSeconds() (float64, error) {
	return strconv.ParseFloat(v.Duration, 64)
}

// Audio is one generated audio artifact.
type Audio struct {
	ID          string `json:"id"`
	URL         string `json:"url,omitempty"`
	URLMP3      string `json:"url_mp3,omitempty"`
	URLWAV      string `json:"url_wav,omitempty"`
	Duration    string `json:"duration,omitempty"`
	DurationMP3 string `json:"duration_mp3,omitempty"`
	DurationWAV string `json:"duration_wav,omitempty"`
}

// DurationSeconds parses the first non-empty duration field.
func (a Audio) DurationSeconds() (float64, error) {
	d := a.Duration
	if d == "" {
		d = a.DurationMP3
	}
	if d == "" {
		d = a.DurationWAV
	}
	return strconv.ParseFloat(d, 64)
}

// Phase returns the lifecycle phase of the snapshot.
func (t *Task) Phase() Phase {
	return t.Status.Phase()
}

// Created returns CreatedAt as a time.
func (t *Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Updated returns UpdatedAt as a time.
func (t *Task) Updated() time.Time {
	return time.UnixMilli(t.UpdatedAt)
}

// FirstVideoURL returns the URL of the first video artifact, or "".
func (t *Task) FirstVideoURL() string {
	if len(t.Result.Videos) == 0 {
		return ""
	}
	return t.Result.Videos[0].URL
}

// ArtifactURLs lists every downloadable URL in the result, videos first.
func (t *Task) ArtifactURLs() []string {
	urls := make([]string, 0, len(t.Result.Videos)+len(t.Result.Audios))
	for _, v := range t.Result.Videos {
		if v.URL != "" {
			urls = append(urls, v.URL)
		}
	}
	for _, a := range t.Result.Audios {
		switch {
		case a.URL != "":
			urls = append(urls, a.URL)
		case a.URLMP3 != "":
			urls = append(urls, a.URLMP3)
		case a.URLWAV != "":
			urls = append(urls, a.URLWAV)
		}
	}
	return urls
}
