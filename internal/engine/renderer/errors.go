package renderer

import (
	"errors"
	"fmt"

	"github.com/Faultbox/oceanview/internal/engine/gpu"
)

var (
	// ErrContextUnavailable means no graphics context could be created or loaded.
	ErrContextUnavailable = errors.New("graphics context unavailable")
	// ErrNotReady is returned by Start before a successful Initialize.
	ErrNotReady = errors.New("renderer not ready")
	// ErrAlreadyRunning is returned by Start while the frame loop is running.
	ErrAlreadyRunning = errors.New("renderer already running")
	// ErrInvalidState is returned by Initialize on an already initialized renderer.
	ErrInvalidState = errors.New("invalid renderer state")
)

// ShaderCompileError carries the compiler diagnostic for one stage.
type ShaderCompileError struct {
	Stage gpu.Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compile failed: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the linker diagnostic.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// MissingCapabilityError reports a device feature the mesh requires.
type MissingCapabilityError struct {
	Capability gpu.Capability
	Reason     string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("missing capability %s: %s", e.Capability, e.Reason)
}
