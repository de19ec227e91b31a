// Command c2enc compresses raw 16-bit 8 kHz speech into Codec 2 frames.
// Output files ending in .c2 get a header recording the mode.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blues/codec2"
	"github.com/blues/codec2/internal/pcmio"
)

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: c2enc 3200|2400|1400|1200 InputRawspeechFile OutputBitFile\n")
	fmt.Fprintf(w, "e.g. (headerless)    c2enc 1400 input.raw output.bin\n")
	fmt.Fprintf(w, "e.g. (with header)   c2enc 1400 input.raw output.c2\n")
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
		fmt.Fprintf(stderr, "c2enc: %v\n", err)
		return 1
	}

	codec, err := codec2.New(mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating codec: %v\n", err)
		return 1
	}
	defer codec.Close()

	fin := stdin
	if inputFile != "-" {
		f, err := os.Open(inputFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening input speech file: %s: %v\n", inputFile, err)
			return 1
		}
		defer f.Close()
		fin = f
	}

	fout := stdout
	if outputFile != "-" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening output compressed bit file: %s: %v\n", outputFile, err)
			return 1
		}
		defer f.Close()
		fout = f
	}

	if strings.ToLower(filepath.Ext(outputFile)) == ".c2" {
		if err := binary.Write(fout, binary.LittleEndian, codec2.NewHeader(mode)); err != nil {
			fmt.Fprintf(stderr, "Error writing header: %v\n", err)
			return 1
		}
	}

	in := pcmio.NewReader(fin, codec.SamplesPerFrame())
	pcm := make(codec2.PCMBuffer, codec.SamplesPerFrame())
	bits := make([]byte, codec.BytesPerFrame())
	var short *pcmio.ShortFrameError
	for frame := 1; ; frame++ {
		err := in.ReadFrame(pcm)
		if errors.Is(err, io.EOF) || errors.As(err, &short) {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error reading input: %v\n", err)
			return 1
		}

		if err := codec.EncodeTo(bits, pcm); err != nil {
			fmt.Fprintf(stderr, "Error encoding frame %d: %v\n", frame, err)
			return 1
		}
		if _, err := fout.Write(bits); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			return 1
		}

		if inputFile == "-" {
			fmt.Fprintf(stderr, "Frame: %d\r", frame)
		}
	}
	return 0
}
