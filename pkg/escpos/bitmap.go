package escpos

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// Bitmap is a bi-level bitmap with row-major pixel storage. It implements
// image.Image (black pixels render as color.Gray{0}, white as color.Gray{255})
// so it can be handed straight to image/png for the portable interchange form.
type Bitmap struct {
	W, H int
	pix  []uint8 // 1 = black, 0 = white; len == W*H
}

// NewBitmap returns an all-white bitmap of the given dimensions.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, pix: make([]uint8, w*h)}
}

func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.W, b.H) }

func (b *Bitmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return color.Gray{Y: 0xff}
	}
	if b.pix[y*b.W+x] != 0 {
		return color.Gray{}
	}
	return color.Gray{Y: 0xff}
}

// Black reports whether the pixel at (x, y) is black. Out-of-range
// coordinates are white.
func (b *Bitmap) Black(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.pix[y*b.W+x] != 0
}

// SetBlack sets the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Bitmap) SetBlack(x, y int, black bool) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	if black {
		b.pix[y*b.W+x] = 1
	} else {
		b.pix[y*b.W+x] = 0
	}
}

// Equal reports pixel-for-pixel equality.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.W != o.W || b.H != o.H {
		return false
	}
	return bytes.Equal(b.pix, o.pix)
}

// EncodePNG encodes the bitmap as a PNG container.
func (b *Bitmap) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG decodes PNG bytes into a bitmap. Pixels with luminance below 128
// are black; everything else is white.
func DecodePNG(data []byte) (*Bitmap, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png decode: %w", err)
	}
	r := img.Bounds()
	bm := NewBitmap(r.Dx(), r.Dy())
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			g := color.GrayModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.Gray)
			bm.SetBlack(x, y, g.Y < 128)
		}
	}
	return bm, nil
}
