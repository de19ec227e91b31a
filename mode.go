package codec2

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects a bitrate and the frame geometry that goes with it. The
// numeric values are the Codec 2 mode identifiers carried in .c2 headers.
type Mode int

const (
	Mode3200 Mode = 0
	Mode2400 Mode = 1
	Mode1400 Mode = 3
	Mode1200 Mode = 5
)

// DefaultMode is used when no bitrate is given.
const DefaultMode = Mode1400

var supportedModes = []Mode{Mode3200, Mode2400, Mode1400, Mode1200}

// SupportedBitrates returns the accepted bitrates, highest first.
func SupportedBitrates() []int {
	out := make([]int, len(supportedModes))
	for i, m := range supportedModes {
		out[i] = m.Bitrate()
	}
	return out
}

// Bitrate returns the mode's bitrate in bits per second, or 0 for an
// unknown mode.
func (m Mode) Bitrate() int {
	switch m {
	case Mode3200:
		return 3200
	case Mode2400:
		return 2400
	case Mode1400:
		return 1400
	case Mode1200:
		return 1200
	}
	return 0
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m.Bitrate() != 0
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return strconv.Itoa(m.Bitrate())
}

// ParseError reports a bitrate token that is not a base-10 integer.
type ParseError struct {
	Token     string
	Remainder string // the part of Token that failed to parse
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing the given bitrate: %q: invalid part is %q", e.Token, e.Remainder)
}

// RangeError reports a well-formed bitrate that no mode provides.
type RangeError struct {
	Token string
	Value int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("error parsing the given bitrate: %q: it must be one of %s", e.Token, allowedList())
}

func allowedList() string {
	rates := SupportedBitrates()
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.Itoa(r)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ModeForBitrate maps a bitrate in bits per second to its mode.
func ModeForBitrate(bps int64) (Mode, error) {
	switch bps {
	case 3200:
		return Mode3200, nil
	case 2400:
		return Mode2400, nil
	case 1400:
		return Mode1400, nil
	case 1200:
		return Mode1200, nil
	default:
		return 0, &RangeError{Token: strconv.FormatInt(bps, 10), Value: bps}
	}
}

// ParseBitrate resolves a bitrate token such as "2400" to a mode. The token
// is read the way strtol reads a base-10 number: leading white space and a
// sign are allowed, and nothing may follow the digits. A malformed token
// yields a *ParseError, a well-formed but unsupported one a *RangeError.
func ParseBitrate(token string) (Mode, error) {
	num, rest := splitInteger(token)
	if rest != "" {
		return 0, &ParseError{Token: token, Remainder: rest}
	}

	var v int64
	if num != "" {
		var err error
		v, err = strconv.ParseInt(num, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, &RangeError{Token: token, Value: v}
			}
			return 0, &ParseError{Token: token, Remainder: token}
		}
	}

	m, err := ModeForBitrate(v)
	if err != nil {
		return 0, &RangeError{Token: token, Value: v}
	}
	return m, nil
}

// splitInteger splits s into its longest leading integer (without the
// leading white space) and the rest. When s holds no digits at all the
// whole of s is the rest.
func splitInteger(s string) (num, rest string) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return "", s
	}
	return s[start:i], s[i:]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
