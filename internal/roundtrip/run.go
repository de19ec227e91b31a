package roundtrip

import (
	"io"
	"log/slog"
	"os"

	"github.com/blues/codec2"
)

// Options describes one file to file round trip.
type Options struct {
	InputPath  string
	OutputPath string
	Mode       codec2.Mode
	Partial    PartialPolicy
	Logger     *slog.Logger

	// Monitor, when set, receives a copy of everything written to the
	// output file.
	Monitor io.Writer
}

// Run creates the codec, opens the input and then the output, and pipes one
// through the other. The codec and both files are released on every return
// path once they have been acquired. Errors are *ResourceError, *OpenError,
// *StreamError or wrap ErrPartialFrame.
func Run(opts Options) (st Stats, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	codec, err := codec2.New(opts.Mode)
	if err != nil {
		return Stats{}, &ResourceError{Err: err}
	}
	defer codec.Close()

	p, err := NewPipeline(codec, WithLogger(logger), WithPartialPolicy(opts.Partial))
	if err != nil {
		return Stats{}, err
	}

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return Stats{}, &OpenError{Role: "input", Path: opts.InputPath, Err: err}
	}
	defer in.Close()

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return Stats{}, &OpenError{Role: "output", Path: opts.OutputPath, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &StreamError{Op: "close", Frame: st.Frames, Err: cerr}
		}
	}()

	logger.Debug("round trip started",
		"input", opts.InputPath,
		"output", opts.OutputPath,
		"mode", opts.Mode,
		"bits_per_frame", codec.BitsPerFrame(),
	)
	var w io.Writer = out
	if opts.Monitor != nil {
		w = io.MultiWriter(out, opts.Monitor)
	}
	return p.Run(in, w)
}
