package errors

// Package errors provides sentinel errors for page and script discovery.

import "errors"

var (
	// ErrDirWalkFailed indicates traversal of a pages or scripts directory failed.
	ErrDirWalkFailed = errors.New("directory walk failed")

	// ErrFileReadFailed indicates reading a discovered page or script failed.
	ErrFileReadFailed = errors.New("file read failed")

	// ErrNoHeading indicates a page does not start with a level-1 text heading.
	ErrNoHeading = errors.New("page has no leading heading")

	// ErrNoFunctions indicates a script has no documented functions left after filtering.
	ErrNoFunctions = errors.New("script has no documented functions")

	// ErrPathCollision indicates two inputs map to the same output link.
	ErrPathCollision = errors.New("path collision detected")
)
