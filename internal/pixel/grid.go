package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of channel values per pixel that carry data.
const Channels = 3

var (
	ErrEmptyGrid    = errors.New("grid has no pixels")
	ErrBufferLength = errors.New("channel buffer does not match grid dimensions")
)

// Grid is a height x width x 3 buffer of 8-bit channel values.
//
// Channel values are stored flat in the canonical order shared by every reader and writer:
// rows top to bottom, columns left to right, and within a pixel red, green, blue.
// Alpha, when the source has one, is held apart and never takes part in the payload.
type Grid struct {
	bounds        image.Rectangle
	width, height int

	rgb   []uint8
	alpha []uint8
}

// FromImage flattens src into a grid. Any color model is normalized to
// non-premultiplied 8-bit RGBA first; alpha is kept and restored by Image.
func FromImage(src image.Image) (*Grid, error) {
	bounds := src.Bounds()
	g := &Grid{
		bounds: bounds,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
	if g.width <= 0 || g.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, g.width, g.height)
	}
	area := g.width * g.height
	g.rgb = make([]uint8, area*Channels)
	g.alpha = make([]uint8, area)

	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := range g.height {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+g.width*4]
			for x := range g.width {
				i := y*g.width + x
				copy(g.rgb[i*Channels:(i+1)*Channels], row[x*4:x*4+3])
				g.alpha[i] = row[x*4+3]
			}
		}
		return g, nil
	}

	for y := range g.height {
		for x := range g.width {
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := y*g.width + x
			g.rgb[i*Channels] = c.R
			g.rgb[i*Channels+1] = c.G
			g.rgb[i*Channels+2] = c.B
			g.alpha[i] = c.A
		}
	}
	return g, nil
}

// FromRGB wraps a raw RGB buffer laid out in canonical order. The buffer is
// used as-is, not copied. Pixels are treated as fully opaque.
func FromRGB(width, height int, rgb []uint8) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	if want := width * height * Channels; len(rgb) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBufferLength, len(rgb), want)
	}
	return &Grid{
		bounds: image.Rect(0, 0, width, height),
		width:  width,
		height: height,
		rgb:    rgb,
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of channel values, which is also the embedding capacity in bits.
func (g *Grid) Len() int { return len(g.rgb) }

// Index maps pixel (x, y) and channel c (0=R, 1=G, 2=B) to its position in Channels.
func (g *Grid) Index(x, y, c int) int {
	return (y*g.width+x)*Channels + c
}

// Channels returns the channel values in canonical order. The slice aliases the grid.
func (g *Grid) Channels() []uint8 { return g.rgb }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.rgb = append([]uint8(nil), g.rgb...)
	if g.alpha != nil {
		c.alpha = append([]uint8(nil), g.alpha...)
	}
	return &c
}

// Image rebuilds an NRGBA image with the original bounds, restoring the alpha
// plane unchanged (opaque when the grid had none).
func (g *Grid) Image() *image.NRGBA {
	dist := image.NewNRGBA(g.bounds)
	for y := range g.height {
		row := dist.Pix[y*dist.Stride : y*dist.Stride+g.width*4]
		for x := range g.width {
			i := y*g.width + x
			copy(row[x*4:x*4+3], g.rgb[i*Channels:(i+1)*Channels])
			if g.alpha != nil {
				row[x*4+3] = g.alpha[i]
			} else {
				row[x*4+3] = 0xff
			}
		}
	}
	return dist
}
