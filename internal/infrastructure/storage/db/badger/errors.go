package dbbadger

import "errors"

var (
	// ErrNullSettings ...
	ErrNullSettings = errors.New("updated settings must not be null")
)
