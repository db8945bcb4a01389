// Package bitmap implements a fixed-size bit set laid out the way Redis lays
// out string bitmaps (offset 0 is the most significant bit of byte 0), so the
// raw value of a GET can be loaded directly and every Set maps to one SETBIT.
package bitmap

// Bitmap is a bounded set of bit flags. Offsets outside [0, Len()) are never
// stored: Get reports false and Set does nothing.
type Bitmap struct {
	size int
	bits []byte
}

// New creates an empty bitmap holding size bits
func New(size int) *Bitmap {
	if size < 0 {
		size = 0
	}
	return &Bitmap{
		size: size,
		bits: make([]byte, (size+7)/8),
	}
}

// FromBytes loads a Redis bitmap value. Short input is zero padded and bits
// beyond size are dropped.
func FromBytes(raw []byte, size int) *Bitmap {
	b := New(size)
	copy(b.bits, raw)
	if rem := b.size % 8; rem != 0 && len(b.bits) > 0 {
		b.bits[len(b.bits)-1] &= byte(0xFF << (8 - rem))
	}
	return b
}

// Len returns the number of addressable bits
func (b *Bitmap) Len() int {
	return b.size
}

// InRange reports whether offset is addressable
func (b *Bitmap) InRange(offset int) bool {
	return offset >= 0 && offset < b.size
}

// Get returns the bit at offset
func (b *Bitmap) Get(offset int) bool {
	if !b.InRange(offset) {
		return false
	}
	return b.bits[offset/8]&mask(offset) != 0
}

// Set turns on the bit at offset and reports whether it changed
func (b *Bitmap) Set(offset int) bool {
	if !b.InRange(offset) || b.Get(offset) {
		return false
	}
	b.bits[offset/8] |= mask(offset)
	return true
}

// Ones returns every set offset in ascending order
func (b *Bitmap) Ones() []int {
	var out []int
	for i := 0; i < b.size; i++ {
		if b.Get(i) {
			out = append(out, i)
		}
	}
	return out
}

// Bytes returns a copy of the Redis-compatible representation
func (b *Bitmap) Bytes() []byte {
	out := make([]byte, len(b.bits))
	copy(out, b.bits)
	return out
}

func mask(offset int) byte {
	return 0x80 >> uint(offset%8)
}
