package steg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"go.uber.org/zap"

	"github.com/yyyoichi/lsb_steg/internal/lsb"
	"github.com/yyyoichi/lsb_steg/internal/pixel"
)

// Terminator is appended to every hidden message to mark where it ends.
const Terminator = lsb.Terminator

var (
	ErrEmptyImage          = errors.New("image has no pixels")
	ErrEmptyMessage        = lsb.ErrEmptyMessage
	ErrMessageTooLarge     = lsb.ErrMessageTooLarge
	ErrCharacterOutOfRange = lsb.ErrCharacterOutOfRange
	ErrAmbiguousMessage    = lsb.ErrAmbiguousMessage
)

// Encode hides message in src with the specified options.
// This is a convenience function that creates a Steg instance and calls its Encode method.
func Encode(ctx context.Context, src image.Image, message string, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Encode(ctx, src, message)
}

// Decode recovers a message hidden in src with the specified options.
// This is a convenience function that creates a Steg instance and calls its Decode method.
func Decode(ctx context.Context, src image.Image, opts ...Option) (message string, found bool, err error) {
	s, err := New(opts...)
	if err != nil {
		return "", false, err
	}
	return s.Decode(ctx, src)
}

type Steg struct {
	trimSpace bool
	logger    *zap.Logger
}

// New initializes a codec. By default surrounding white space is trimmed from
// messages before encoding and nothing is logged.
func New(opts ...Option) (*Steg, error) {
	s := &Steg{trimSpace: true}
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode hides message in the least significant bits of src.
//
// Process:
//  1. Converts src to an 8-bit RGB grid; alpha is set aside.
//  2. Maps each character to one byte and appends the terminator "%%%".
//  3. Expands the bytes to bits, most significant first.
//  4. Writes one bit into the LSB of each red, green and blue value,
//     row by row, left to right.
//
// src is never modified; the result is a new *image.NRGBA with the same bounds.
// Returns ErrMessageTooLarge, without writing anything, when the bits exceed
// width*height*3.
func (s *Steg) Encode(ctx context.Context, src image.Image, message string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.trimSpace {
		message = strings.TrimSpace(message)
	}
	g, err := s.grid(src)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("encoding message",
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
		zap.Int("capacity_bits", lsb.Capacity(g)),
		zap.Int("message_bits", lsb.FramedBits(len([]rune(message)))),
	)
	if err := lsb.Embed(g, message); err != nil {
		return nil, err
	}
	return g.Image(), nil
}

// Decode reads the least significant bits of src in the same order Encode
// writes them and stops at the first terminator.
//
// found is false when src holds no terminated message; that is not an error.
func (s *Steg) Decode(ctx context.Context, src image.Image) (message string, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	g, err := s.grid(src)
	if err != nil {
		return "", false, err
	}
	message, found = lsb.Extract(g)
	s.logger.Debug("decoded image",
		zap.Int("capacity_bits", lsb.Capacity(g)),
		zap.Bool("found", found),
		zap.Int("message_len", len([]rune(message))),
	)
	return message, found, nil
}

// Capacity reports how many bits src can hold and the longest message, in
// characters, that fits once the terminator is added.
func (s *Steg) Capacity(src image.Image) (bits, maxChars int, err error) {
	g, err := s.grid(src)
	if err != nil {
		return 0, 0, err
	}
	bits = lsb.Capacity(g)
	return bits, max(bits/8-len(Terminator), 0), nil
}

func (s *Steg) grid(src image.Image) (*pixel.Grid, error) {
	g, err := pixel.FromImage(src)
	if err != nil {
		if errors.Is(err, pixel.ErrEmptyGrid) {
			return nil, fmt.Errorf("%w: %w", ErrEmptyImage, err)
		}
		return nil, err
	}
	return g, nil
}

func (s *Steg) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return nil
}
