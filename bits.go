package codec2

import "fmt"

const (
	wordSize   = 8   // bits per byte
	indexMask  = 0x7 // bit index within a byte
	shiftRight = 3   // bit index to byte index
)

// bitWriter packs MSB-first bit fields into a byte slice. Fields are Gray
// coded unless natural is set.
type bitWriter struct {
	buf     []byte
	n       uint // bits written so far
	natural bool
}

func newBitWriter(buf []byte) *bitWriter {
	clear(buf)
	return &bitWriter{buf: buf}
}

func (w *bitWriter) pack(field int, width uint) {
	if !w.natural {
		field = (field >> 1) ^ field
	}
	for width != 0 {
		bitsLeft := wordSize - (w.n & indexMask)
		slice := min(bitsLeft, width)
		word := w.n >> shiftRight
		w.buf[word] |= byte((field >> (width - slice)) << (bitsLeft - slice))
		w.n += slice
		width -= slice
	}
}

func (w *bitWriter) packBool(b bool) {
	if b {
		w.pack(1, 1)
	} else {
		w.pack(0, 1)
	}
}

// bitReader is the inverse of bitWriter.
type bitReader struct {
	buf     []byte
	n       uint
	natural bool
}

func newBitReader(buf []byte) *bitReader {
	return &bitReader{buf: buf}
}

func (r *bitReader) unpack(width uint) (int, error) {
	var field uint
	for width != 0 {
		bitsLeft := wordSize - (r.n & indexMask)
		slice := min(bitsLeft, width)
		word := r.n >> shiftRight
		if int(word) >= len(r.buf) {
			return 0, fmt.Errorf("buffer underrun: word index %d out of range", word)
		}
		value := (uint(r.buf[word]) >> (bitsLeft - slice)) & ((1 << slice) - 1)
		field |= value << (width - slice)
		r.n += slice
		width -= slice
	}
	if r.natural {
		return int(field), nil
	}
	t := field ^ (field >> 8)
	t ^= t >> 4
	t ^= t >> 2
	t ^= t >> 1
	return int(t), nil
}

func (r *bitReader) unpackBool() (bool, error) {
	v, err := r.unpack(1)
	return v != 0, err
}
