package grid

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// QuantizeUint8 rounds half to even and saturates to [0,255].
func QuantizeUint8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}

	r := math.RoundToEven(v)
	switch {
	case r <= 0:
		return 0
	case r >= 255:
		return 255
	default:
		return uint8(r)
	}
}

// Quantize returns a copy of g with every sample quantized to the 8-bit range.
func Quantize(g *Grid) *Grid {
	out := g.Clone()
	out.Apply(func(v float64) float64 {
		return float64(QuantizeUint8(v))
	})
	return out
}

// ToGray quantizes g into an 8-bit grayscale image.
func ToGray(g *Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))

	for y := 0; y < g.Rows; y++ {
		row := g.Row(y)
		for x := 0; x < g.Cols; x++ {
			img.Pix[y*img.Stride+x] = QuantizeUint8(row[x])
		}
	}

	return img
}

// FromImage converts any image to an intensity grid using the standard
// luma weights of color.GrayModel.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrUnsupportedInput)
	}

	bounds := img.Bounds()
	g, err := New(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < g.Rows; y++ {
			row := g.Row(y)
			off := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < g.Cols; x++ {
				row[x] = float64(gray.Pix[off+x])
			}
		}
		return g, nil
	}

	for y := 0; y < g.Rows; y++ {
		row := g.Row(y)
		for x := 0; x < g.Cols; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			row[x] = float64(c.Y)
		}
	}

	return g, nil
}

// Rescale maps the sample range of g linearly onto [lo, hi]. A flat grid maps
// entirely to lo.
func Rescale(g *Grid, lo, hi float64) *Grid {
	out := g.Clone()
	minVal, maxVal := g.MinMax()

	if maxVal-minVal == 0 {
		out.Apply(func(float64) float64 { return lo })
		return out
	}

	scale := (hi - lo) / (maxVal - minVal)
	out.Apply(func(v float64) float64 {
		return (v-minVal)*scale + lo
	})
	return out
}
