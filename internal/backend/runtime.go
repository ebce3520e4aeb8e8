package backend

import (
	"fmt"

	"github.com/vk/bitconf/internal/resource"
)

// Handle identifies a live resource. Zero is never a valid handle.
type Handle uint64

// Runtime creates resources from descriptors.
type Runtime interface {
	Init(subsystems resource.SubsystemMask) error
	CreateWindow(params resource.WindowParams) (Handle, error)
	CreateRenderer(window Handle, params resource.RendererParams) (Handle, error)
	SetDrawColor(renderer Handle, color resource.Color) error
	Destroy(h Handle) error
	Close() error
}

// ExternalResourceError carries a runtime failure. Message is the runtime's
// own text, unchanged.
type ExternalResourceError struct {
	Op      string
	Message string
	Err     error
}

func (e *ExternalResourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ExternalResourceError) Unwrap() error { return e.Err }

// Wrap reports err as a failure of op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalResourceError{Op: op, Message: err.Error(), Err: err}
}
