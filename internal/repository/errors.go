package repository

import "errors"

// ErrDuplicate is returned when a record collides with a unique key.
var ErrDuplicate = errors.New("record already exists")
