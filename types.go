package kling

import "github.com/maauso/kling-go/internal/task"

// Task data model.
type (
	Task        = task.Task
	TaskStatus  = task.Status
	TaskInfo    = task.Info
	TaskResult  = task.Result
	Video       = task.Video
	Audio       = task.Audio
	Face        = task.Face
	FaceSession = task.FaceSession
)

// Task statuses reported by the server.
const (
	StatusSubmitted  = task.StatusSubmitted
	StatusProcessing = task.StatusProcessing
	StatusSucceeded  = task.StatusSucceeded
	StatusFailed     = task.StatusFailed
)

// Ptr returns a pointer to v. It is a helper for optional request fields.
func Ptr[T any](v T) *T {
	return &v
}
