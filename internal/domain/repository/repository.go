package repository

import "errors"

// ErrNotFound is returned by all repositories when an identifier has no
// matching record.
var ErrNotFound = errors.New("record not found")
