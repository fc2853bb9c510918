// Package app provides the main application structure and coordination.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a terminal backend.
	ErrNoBackend = errors.New("no terminal backend")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ScriptError reports a failing startup script.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
