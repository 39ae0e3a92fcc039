// Package quality measures how far an encoded grid drifts from its carrier.
package quality

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/yyyoichi/lsb_steg/internal/pixel"
)

var ErrShapeMismatch = errors.New("grids differ in size")

// Report summarizes the distortion between two grids of the same size.
type Report struct {
	Channels int
	// Changed counts channel values that differ.
	Changed int
	// MaxDelta is the largest absolute difference of a single channel value.
	MaxDelta int
	MSE      float64
	// PSNR in dB for 8-bit channels; +Inf for identical grids.
	PSNR float64
}

// ChangedRatio returns Changed / Channels.
func (r Report) ChangedRatio() float64 {
	if r.Channels == 0 {
		return 0
	}
	return float64(r.Changed) / float64(r.Channels)
}

// Compare computes a Report over the RGB channels of a and b. Alpha is ignored.
func Compare(a, b *pixel.Grid) (Report, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return Report{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.Width(), a.Height(), b.Width(), b.Height())
	}
	ca, cb := a.Channels(), b.Channels()
	fa, fb := make([]float64, len(ca)), make([]float64, len(cb))
	r := Report{Channels: len(ca)}
	for i := range ca {
		fa[i], fb[i] = float64(ca[i]), float64(cb[i])
		if d := int(ca[i]) - int(cb[i]); d != 0 {
			r.Changed++
			if d < 0 {
				d = -d
			}
			r.MaxDelta = max(r.MaxDelta, d)
		}
	}
	dist := floats.Distance(fa, fb, 2)
	r.MSE = dist * dist / float64(len(fa))
	if r.MSE == 0 {
		r.PSNR = math.Inf(1)
	} else {
		r.PSNR = 10 * math.Log10(255*255/r.MSE)
	}
	return r, nil
}
