package steg

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func createImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}
	return img
}

func TestSteg(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		test := []struct {
			name    string
			src     image.Image
			message string
		}{
			{"nrgba", createImage(100, 100), "HI"},
			{"rgba", image.NewRGBA(image.Rect(0, 0, 32, 32)), "hello, steganography"},
			{"gray", image.NewGray(image.Rect(0, 0, 20, 20)), "gray carriers work too"},
			{"offset bounds", createImage(40, 40).SubImage(image.Rect(10, 10, 30, 30)), "sub image"},
			{"latin-1", createImage(30, 30), "crème brûlée"},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				encoded, err := Encode(ctx, tt.src, tt.message)
				require.NoError(t, err)
				assert.Equal(t, tt.src.Bounds(), encoded.Bounds())

				message, found, err := Decode(ctx, encoded)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, tt.message, message)
			})
		}
	})

	t.Run("source is not modified", func(t *testing.T) {
		src := createImage(20, 20)
		before := append([]uint8(nil), src.Pix...)
		_, err := Encode(ctx, src, "leave me alone")
		require.NoError(t, err)
		assert.Equal(t, before, src.Pix)
	})

	t.Run("alpha is preserved", func(t *testing.T) {
		src := createImage(10, 10)
		for i := 3; i < len(src.Pix); i += 4 {
			src.Pix[i] = uint8(i)
		}
		encoded, err := Encode(ctx, src, "alpha")
		require.NoError(t, err)
		out := encoded.(*image.NRGBA)
		for i := 3; i < len(out.Pix); i += 4 {
			assert.Equal(t, src.Pix[i], out.Pix[i])
		}
	})

	t.Run("trim space", func(t *testing.T) {
		src := createImage(20, 20)

		encoded, err := Encode(ctx, src, "  padded \n")
		require.NoError(t, err)
		message, _, _ := Decode(ctx, encoded)
		assert.Equal(t, "padded", message)

		encoded, err = Encode(ctx, src, "  padded \n", WithoutTrimSpace())
		require.NoError(t, err)
		message, _, _ = Decode(ctx, encoded)
		assert.Equal(t, "  padded \n", message)

		_, err = Encode(ctx, src, " \t\n ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("errors", func(t *testing.T) {
		test := []struct {
			name    string
			src     image.Image
			message string
			wantErr error
		}{
			{"2x2 too small for one char", createImage(2, 2), "A", ErrMessageTooLarge},
			{"empty", createImage(10, 10), "", ErrEmptyMessage},
			{"out of range", createImage(10, 10), "こんにちは", ErrCharacterOutOfRange},
			{"ambiguous", createImage(10, 10), "100%", ErrAmbiguousMessage},
			{"empty image", image.NewNRGBA(image.Rectangle{}), "A", ErrEmptyImage},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				encoded, err := Encode(ctx, tt.src, tt.message)
				assert.Nil(t, encoded)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			})
		}
	})

	t.Run("not found", func(t *testing.T) {
		message, found, err := Decode(ctx, image.NewNRGBA(image.Rect(0, 0, 50, 50)))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, message)

		_, _, err = Decode(ctx, image.NewNRGBA(image.Rectangle{}))
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Encode(cctx, createImage(10, 10), "A")
		assert.ErrorIs(t, err, context.Canceled)
		_, _, err = Decode(cctx, createImage(10, 10))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("capacity", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)
		test := []struct {
			width, height int
			bits, chars   int
		}{
			{2, 2, 12, 0},
			{4, 4, 48, 3},
			{100, 100, 30000, 3747},
		}
		for _, tt := range test {
			bits, chars, err := s.Capacity(createImage(tt.width, tt.height))
			require.NoError(t, err)
			assert.Equal(t, tt.bits, bits)
			assert.Equal(t, tt.chars, chars)
		}
		_, _, err = s.Capacity(image.NewNRGBA(image.Rectangle{}))
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("logger", func(t *testing.T) {
		_, err := New(WithLogger(nil))
		assert.Error(t, err)

		core, logs := observer.New(zap.DebugLevel)
		s, err := New(WithLogger(zap.New(core)))
		require.NoError(t, err)
		encoded, err := s.Encode(ctx, createImage(10, 10), "HI")
		require.NoError(t, err)
		_, _, err = s.Decode(ctx, encoded)
		require.NoError(t, err)

		entries := logs.All()
		require.Len(t, entries, 2)
		assert.Equal(t, int64(300), entries[0].ContextMap()["capacity_bits"])
		assert.Equal(t, int64(40), entries[0].ContextMap()["message_bits"])
		assert.Equal(t, true, entries[1].ContextMap()["found"])
	})
}
