package contract

import "errors"

var (
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrSchemaViolation  = errors.New("model response violates schema")
	ErrValidation       = errors.New("validation failed")
	ErrToolLoopExceeded = errors.New("tool call loop exceeded iteration limit")
)
