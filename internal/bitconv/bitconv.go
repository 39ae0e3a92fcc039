package bitconv

import "github.com/yyyoichi/bitstream-go"

// Stream is an immutable bit sequence built from bytes, most significant bit first.
type Stream struct {
	reader *bitstream.BitReader[uint64]
}

// FromBytes expands every byte of b into 8 bits, MSB first, in order.
func FromBytes(b []byte) Stream {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range b {
		w.Write8(0, 8, v)
	}
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(w.Bits())
	return Stream{reader: r}
}

// Len returns the number of bits.
func (s Stream) Len() int {
	if s.reader == nil {
		return 0
	}
	return s.reader.Bits()
}

// Bit returns the bit at position at as 0 or 1.
func (s Stream) Bit(at int) uint8 {
	if bit, _ := s.reader.ReadBitAt(at); bit {
		return 1
	}
	return 0
}

// Bools returns the stream as a slice of booleans.
func (s Stream) Bools() []bool {
	bits := make([]bool, s.Len())
	for i := range bits {
		bits[i], _ = s.reader.ReadBitAt(i)
	}
	return bits
}

// Packer regroups single bits into bytes, MSB first. The zero value is ready to use.
type Packer struct {
	cur byte
	n   int
}

// Push adds a bit. It reports the completed byte once 8 bits have been pushed.
func (p *Packer) Push(bit uint8) (b byte, ok bool) {
	p.cur = p.cur<<1 | bit&1
	p.n++
	if p.n < 8 {
		return 0, false
	}
	b = p.cur
	p.cur, p.n = 0, 0
	return b, true
}
