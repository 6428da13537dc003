package taskrt

import "errors"

const Namespace = "taskrt"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
