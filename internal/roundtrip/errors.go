package roundtrip

import (
	"errors"
	"fmt"
)

// ErrUsage reports a wrong command line. No file has been touched.
var ErrUsage = errors.New("usage")

// ErrPartialFrame is returned under PartialReject when the input does not
// end on a frame boundary.
var ErrPartialFrame = errors.New("input ends with a partial frame")

// OpenError reports an input or output path that could not be opened.
type OpenError struct {
	Role string // "input" or "output"
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("error opening %s speech file: %s: %v", e.Role, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ResourceError reports a codec or buffer that could not be created.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("error creating codec: %v", e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// StreamError reports a read, write or codec failure part way through a
// run. Frame is the zero-based index of the frame being processed.
type StreamError struct {
	Op    string // "read", "encode", "decode", "write", "flush" or "close"
	Frame int
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("error during %s at frame %d: %v", e.Op, e.Frame, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
