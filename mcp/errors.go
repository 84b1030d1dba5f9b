package mcp

import "errors"

// Argument errors
var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrQueryRequired    = errors.New("query is required")
)
