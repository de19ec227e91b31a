// Command c2dec expands Codec 2 frames back into raw 16-bit 8 kHz speech.
// When the input starts with a .c2 header its mode overrides the one given
// on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blues/codec2"
	"github.com/blues/codec2/internal/pcmio"
)

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: c2dec 3200|2400|1400|1200 InputBitFile OutputRawSpeechFile\n")
	fmt.Fprintf(w, "e.g. (headerless)    c2dec 1400 input.bin output.raw\n")
	fmt.Fprintf(w, "e.g. (with header)   c2dec 1400 input.c2 output.raw\n")
	fmt.Fprintf(w, "use - for stdin or stdout\n")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) != 3 {
		usage(stderr)
		return 1
	}
	inputFile, outputFile := args[1], args[2]

	mode, err := codec2.ParseBitrate(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "c2dec: %v\n", err)
		return 1
	}

	var input []byte
	if inputFile == "-" {
		input, err = io.ReadAll(stdin)
	} else {
		input, err = os.ReadFile(inputFile)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	data := input
	if h, err := codec2.ParseHeader(input); err == nil {
		if mode, err = h.CodecMode(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "header: %X\n", input[:codec2.HeaderSize])
			return 1
		}
		data = input[codec2.HeaderSize:]
	} else if !errors.Is(err, codec2.ErrNoHeader) {
		fmt.Fprintf(stderr, "Error reading header: %v\n", err)
		return 1
	}

	codec, err := codec2.New(mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating codec: %v\n", err)
		return 1
	}
	defer codec.Close()

	fout := stdout
	if outputFile != "-" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file: %v\n", err)
			return 1
		}
		defer f.Close()
		fout = f
	}

	out := pcmio.NewWriter(fout, codec.SamplesPerFrame())
	pcm := make([]int16, codec.SamplesPerFrame())
	frameSize := codec.BytesPerFrame()
	for i := 0; i+frameSize <= len(data); i += frameSize {
		frame := i/frameSize + 1
		if err := codec.DecodeTo(pcm, data[i:i+frameSize]); err != nil {
			fmt.Fprintf(stderr, "Error decoding frame %d: %v\n", frame, err)
			return 1
		}
		if err := out.WriteFrame(pcm); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			return 1
		}
		if inputFile == "-" {
			fmt.Fprintf(stderr, "Frame: %d\r", frame)
		}
	}

	if err := out.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}
