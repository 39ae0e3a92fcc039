// Package lsb hides a text message in the least significant bit of every
// channel value of a pixel grid and recovers it.
//
// Each character becomes one byte, the terminator "%%%" is appended, and the
// bytes are written MSB first, one bit per channel, in the grid's canonical order.
package lsb

import (
	"fmt"

	"github.com/yyyoichi/lsb_steg/internal/bitconv"
	"github.com/yyyoichi/lsb_steg/internal/pixel"
)

// Capacity returns the number of bits g can hold.
func Capacity(g *pixel.Grid) int {
	return g.Len()
}

// Embed writes message into g in place.
// Nothing is written when the framed message does not fit.
func Embed(g *pixel.Grid, message string) error {
	framed, err := Frame(message)
	if err != nil {
		return err
	}
	return EmbedBits(g, bitconv.FromBytes(framed))
}

// EmbedBits replaces the LSB of the first bits.Len() channel values with bits.
// Remaining channel values are left untouched.
func EmbedBits(g *pixel.Grid, bits bitconv.Stream) error {
	if n, capacity := bits.Len(), Capacity(g); n > capacity {
		return fmt.Errorf("%w: %d bits > capacity %d bits", ErrMessageTooLarge, n, capacity)
	}
	channels := g.Channels()
	for i := range bits.Len() {
		channels[i] = channels[i]&0xfe | bits.Bit(i)
	}
	return nil
}

// Extract reads LSBs in canonical order until the terminator appears.
// found is false when the whole grid is read without meeting it.
func Extract(g *pixel.Grid) (message string, found bool) {
	var (
		p     bitconv.Packer
		bytes []byte
	)
	for _, v := range g.Channels() {
		b, ok := p.Push(v & 1)
		if !ok {
			continue
		}
		bytes = append(bytes, b)
		if n := len(bytes); n >= len(Terminator) && string(bytes[n-len(Terminator):]) == Terminator {
			return unframe(bytes[:n-len(Terminator)]), true
		}
	}
	return "", false
}
