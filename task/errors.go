package task

import "errors"

// ErrEmptyTask is the failure recorded when a chain finishes without any
// step ever recording a value or an exception — the empty-task case
// named in the original runtime this package is modeled on.
var ErrEmptyTask = errors.New("empty task did not return a result")
