package errors

import (
	"fmt"
)

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// NotDirectory represents when a path that was expected to be a directory is
// something else.
type NotDirectory struct {
	Path string
}

func (err NotDirectory) Error() string {
	return fmt.Sprintf("%q is not a directory", err.Path)
}
