package taskman

import "errors"

const Namespace = "taskman"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")
)
