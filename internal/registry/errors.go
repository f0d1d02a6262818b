package registry

import "errors"

var (
	ErrNotFound          = errors.New("project not found")
	ErrSourceUnavailable = errors.New("project directory is missing and no source is recorded")
	ErrInvalidSourceURL  = errors.New("cannot derive a project path from source URL")
)
