package library

import (
	"errors"
)

var (
	// ErrUnreadable is returned when a path cannot be listed or inspected
	ErrUnreadable = errors.New("path is unreadable")

	videoExtensions = []string{"webm", "mkv", "vob", "ogg", "gif", "avi", "mov", "wmv", "mp4", "m4v", "3gp"}
)

// Library discovers episode files on disk. It never opens the files themselves.
type Library interface {
	ListVideoFiles(path string) ([]string, error)
	ListVideoFileInfo(path string) ([]VideoFile, error)
	GuessTitle(path string) (string, error)
	CountVideoFiles(path string) (int, error)
}

// VideoFile is a discovered candidate episode file
type VideoFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}
