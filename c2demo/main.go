// Command c2demo encodes and immediately decodes a file of raw speech with
// Codec 2, writing the reconstructed speech. It is a quick way to hear what
// a mode does to a recording.
//
// Convert to and from wave files with sox:
//
//	sox file.wav -r 8000 -e signed -b 16 -c 1 file.raw
//	sox -r 8000 -e signed -b 16 -c 1 file.raw file.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blues/codec2"
	"github.com/blues/codec2/internal/config"
	"github.com/blues/codec2/internal/playback"
	"github.com/blues/codec2/internal/roundtrip"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: c2demo [flags] InputRawSpeechFile OutputRawSpeechFile 3200|2400|1400|1200 (bitrate is optional, default %d)\n",
		codec2.DefaultMode.Bitrate())
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("c2demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to an optional YAML configuration file")
	verbose := fs.Bool("v", false, "enable debug logging")
	rejectPartial := fs.Bool("reject-partial", false, "fail when the input ends with a partial frame")
	play := fs.Bool("play", false, "also play the reconstructed speech on the default audio device")
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	pos := fs.Args()
	if err := checkArgs(pos); err != nil {
		fmt.Fprintf(stderr, "c2demo: %v\n", err)
		usage(stderr)
		return 1
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "c2demo: %v\n", err)
			return 1
		}
	}

	level := cfg.LogLevel
	if *verbose {
		level = config.LogDebug
	}
	logger := newLogger(level, stderr)

	mode, err := cfg.Mode()
	if len(pos) == 3 {
		mode, err = codec2.ParseBitrate(pos[2])
	}
	if err != nil {
		fmt.Fprintf(stderr, "c2demo: %v\n", err)
		return 1
	}

	policy, err := cfg.PartialFrame.Policy()
	if err != nil {
		fmt.Fprintf(stderr, "c2demo: %v\n", err)
		return 1
	}
	if *rejectPartial {
		policy = roundtrip.PartialReject
	}

	opts := roundtrip.Options{
		InputPath:  pos[0],
		OutputPath: pos[1],
		Mode:       mode,
		Partial:    policy,
		Logger:     logger,
	}
	if *play {
		player, err := playback.Open()
		if err != nil {
			fmt.Fprintf(stderr, "c2demo: %v\n", err)
			return 1
		}
		defer func() {
			if err := player.Close(); err != nil {
				logger.Warn("closing audio device", "err", err)
			}
		}()
		opts.Monitor = player
	}

	st, err := roundtrip.Run(opts)
	if st.DroppedBytes > 0 {
		logger.Warn("input ends with a partial frame; it was not transcoded",
			"samples", st.DroppedSamples,
			"bytes", st.DroppedBytes,
		)
	}
	if err != nil {
		fmt.Fprintf(stderr, "c2demo: %v\n", err)
		return 1
	}

	logger.Info("round trip complete",
		"mode", mode,
		"frames", st.Frames,
		"samples", st.Samples,
	)
	return 0
}

// checkArgs accepts an input path, an output path and an optional bitrate.
func checkArgs(pos []string) error {
	if len(pos) < 2 || len(pos) > 3 {
		return fmt.Errorf("%w: want 2 or 3 arguments, got %d", roundtrip.ErrUsage, len(pos))
	}
	return nil
}

func newLogger(level config.LogLevel, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
