package domain

import "errors"

var (
	ErrNotFound       = errors.New("project not found")
	ErrDuplicateID    = errors.New("project id already exists")
	ErrInvalidProject = errors.New("invalid project fields")
)
