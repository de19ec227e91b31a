// Package playback sends reconstructed speech to the default audio device.
package playback

import (
	"fmt"

	"github.com/hajimehoshi/oto"

	"github.com/blues/codec2"
)

const (
	channels       = 1
	bytesPerSample = 2
	bufferSize     = 8192
)

// Player plays 16-bit mono PCM at the codec sample rate. It is an
// io.WriteCloser, so it can sit next to the output file in an
// io.MultiWriter.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open opens the audio device.
func Open() (*Player, error) {
	ctx, err := oto.NewContext(codec2.SampleRate, channels, bytesPerSample, bufferSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	return &Player{ctx: ctx, player: ctx.NewPlayer()}, nil
}

// Write queues little-endian samples for playback. It blocks while the
// device buffer is full.
func (p *Player) Write(b []byte) (int, error) {
	return p.player.Write(b)
}

// Close drains the player and releases the device.
func (p *Player) Close() error {
	err := p.player.Close()
	if cerr := p.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}
