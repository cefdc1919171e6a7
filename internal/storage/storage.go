// Package storage persists downloaded task artifacts.
// It defines the Storage interface (port) and implementations for a local
// directory and an S3 bucket.
package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"
)

// Storage defines where downloaded artifacts end up.
type Storage interface {
	// Save streams data under name and returns where it landed: a file path
	// for local storage, an object URL for S3.
	Save(ctx context.Context, name string, data io.Reader) (location string, err error)
}

// FetchFunc streams one artifact into w and returns the byte count.
type FetchFunc func(ctx context.Context, w io.Writer) (int64, error)

// Transfer pipes fetch straight into store without buffering the artifact in
// memory. A fetch failure takes precedence over the save error it causes.
func Transfer(ctx context.Context, store Storage, name string, fetch FetchFunc) (location string, n int64, err error) {
	pr, pw := io.Pipe()
	fetchErr := make(chan error, 1)
	go func() {
		var ferr error
		n, ferr = fetch(ctx, pw)
		_ = pw.CloseWithError(ferr)
		fetchErr <- ferr
	}()

	location, saveErr := store.Save(ctx, name, pr)
	// Unblock the writer if Save gave up before EOF.
	_ = pr.CloseWithError(saveErr)

	if err := <-fetchErr; err != nil {
		return "", n, err
	}
	if saveErr != nil {
		return "", n, saveErr
	}
	return location, n, nil
}

// ObjectName derives a file name for the index-th artifact of a task from its
// URL, keeping the URL's extension. The first artifact gets no index suffix.
func ObjectName(taskID string, index int, rawURL string) string {
	ext := ".bin"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	if index == 0 {
		return taskID + ext
	}
	return taskID + "_" + strconv.Itoa(index) + ext
}
