package codec2

import (
	"errors"
	"fmt"
)

// HeaderSize is the length of a .c2 file header.
const HeaderSize = 7

// .c2 header constants
var (
	Magic        = [3]byte{0xc0, 0xde, 0xc2}
	VersionMajor = byte(0x01)
	VersionMinor = byte(0x00)
)

// ErrNoHeader is returned by ParseHeader when data does not start with the
// .c2 magic.
var ErrNoHeader = errors.New("codec2: missing c2 header")

// Header is the 7 byte .c2 file header. Its layout matches the file, so it
// can be written with binary.Write.
type Header struct {
	Magic        [3]byte
	VersionMajor byte
	VersionMinor byte
	Mode         byte
	Flags        byte
}

// NewHeader returns a header for mode.
func NewHeader(mode Mode) Header {
	return Header{
		Magic:        Magic,
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Mode:         byte(mode),
	}
}

// Bytes returns the header in file order.
func (h Header) Bytes() []byte {
	return []byte{h.Magic[0], h.Magic[1], h.Magic[2], h.VersionMajor, h.VersionMinor, h.Mode, h.Flags}
}

// IsC2Header reports whether data starts with a .c2 header.
func IsC2Header(data []byte) bool {
	return len(data) >= HeaderSize && [3]byte(data[:3]) == Magic
}

// ParseHeader decodes the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if !IsC2Header(data) {
		return Header{}, ErrNoHeader
	}
	return Header{
		Magic:        [3]byte(data[:3]),
		VersionMajor: data[3],
		VersionMinor: data[4],
		Mode:         data[5],
		Flags:        data[6],
	}, nil
}

// CodecMode returns the header's mode, or an error when it is not one this
// package can decode.
func (h Header) CodecMode() (Mode, error) {
	m := Mode(h.Mode)
	if !m.Valid() {
		return 0, fmt.Errorf("codec2: header mode %d not supported", h.Mode)
	}
	return m, nil
}
