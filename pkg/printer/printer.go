// Package printer provides an in-process reference implementation of the
// text/graphics printer API that generated call scripts target: init, set,
// text, image, and cut.
//
// The Dummy printer encodes calls back into ESC/POS bytes the way the
// python-escpos Dummy backend does, including the bookkeeping that backend
// injects on its own (code table selection before the first text, a feed
// before cuts, line spacing around band images). Those injected commands
// decode to backend-internal kinds, which is what lets the verifier compare
// regenerated output against an original semantically.
package printer

import (
	"bytes"
	"fmt"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
)

// ImageImpl selects the wire encoding Image uses.
type ImageImpl string

const (
	// BitImageColumn transports the bitmap as 24-dot ESC * bands.
	BitImageColumn ImageImpl = "bitImageColumn"
	// BitImageRaster transports the bitmap as one GS v 0 raster block.
	BitImageRaster ImageImpl = "bitImageRaster"
)

// Band geometry and spacing used by the column implementation. 24-dot bands
// with the line spacing python-escpos sets while printing them.
const (
	bandDots      = 24
	bandMode      = 33
	bandSpacing   = 16
	feedBeforeCut = 4
)

// SetOptions carries the optional arguments of a set() call. Zero values
// mean "not given": empty Align, nil Bold/Underline, zero Width/Height.
type SetOptions struct {
	Align     string
	Bold      *bool
	Underline *int
	Width     int
	Height    int
}

// Dummy is a capture-only printer: every call appends the equivalent
// ESC/POS bytes to an in-memory buffer.
type Dummy struct {
	buf          bytes.Buffer
	codePageSent bool
}

// NewDummy returns an empty capture printer.
func NewDummy() *Dummy { return &Dummy{} }

// Output returns the bytes captured so far.
func (d *Dummy) Output() []byte { return d.buf.Bytes() }

// Raw appends bytes verbatim.
func (d *Dummy) Raw(b []byte) { d.buf.Write(b) }

// Init emits ESC @.
func (d *Dummy) Init() {
	d.buf.Write([]byte{escpos.ESC, '@'})
}

// Set emits the formatting commands for the given options, in a fixed order:
// alignment, bold, underline, then character size.
func (d *Dummy) Set(o SetOptions) {
	switch o.Align {
	case "left":
		d.buf.Write([]byte{escpos.ESC, 'a', 0})
	case "center":
		d.buf.Write([]byte{escpos.ESC, 'a', 1})
	case "right":
		d.buf.Write([]byte{escpos.ESC, 'a', 2})
	}
	if o.Bold != nil {
		v := byte(0)
		if *o.Bold {
			v = 1
		}
		d.buf.Write([]byte{escpos.ESC, 'E', v})
	}
	if o.Underline != nil {
		d.buf.Write([]byte{escpos.ESC, '-', byte(*o.Underline)})
	}
	if o.Width > 0 || o.Height > 0 {
		w, h := o.Width, o.Height
		if w == 0 {
			w = 1
		}
		if h == 0 {
			h = 1
		}
		v := byte((w-1)&0x07) | byte((h-1)&0x07)<<4
		d.buf.Write([]byte{escpos.GS, '!', v})
	}
}

// Text appends printable text. The first text call selects code table 0,
// matching the codepage handling of the reference backend. Bytes outside
// printable ASCII other than LF and CR are replaced with '?'.
func (d *Dummy) Text(s string) {
	if !d.codePageSent {
		d.buf.Write([]byte{escpos.ESC, 't', 0})
		d.codePageSent = true
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == escpos.LF || b == escpos.CR:
			d.buf.WriteByte(b)
		case b >= 0x20 && b <= 0x7E:
			d.buf.WriteByte(b)
		default:
			d.buf.WriteByte('?')
		}
	}
}

// Image transports a bitmap using the selected implementation.
func (d *Dummy) Image(bm *escpos.Bitmap, impl ImageImpl) error {
	if bm == nil || bm.W == 0 || bm.H == 0 {
		return fmt.Errorf("empty bitmap")
	}
	switch impl {
	case BitImageColumn:
		d.imageColumn(bm)
		return nil
	case BitImageRaster:
		d.imageRaster(bm)
		return nil
	}
	return fmt.Errorf("unknown image implementation %q", impl)
}

// imageColumn emits the bitmap as 24-dot bands: spacing down to the band
// height, one ESC * command per band with a band-advance line feed between
// bands, spacing restored. The feed after the final band is the caller's
// concern (decoded streams keep it as a distinct line_feed command, so the
// code generator re-emits it as its own call). Heights that are not a
// multiple of 24 pad the final band with white.
func (d *Dummy) imageColumn(bm *escpos.Bitmap) {
	d.buf.Write([]byte{escpos.ESC, '3', bandSpacing})
	for top := 0; top < bm.H; top += bandDots {
		if top > 0 {
			d.buf.WriteByte(escpos.LF)
		}
		d.buf.Write([]byte{
			escpos.ESC, '*', bandMode,
			byte(bm.W & 0xFF), byte(bm.W >> 8),
		})
		d.buf.Write(escpos.EncodeBand(bm, top, bandDots))
	}
	d.buf.Write([]byte{escpos.ESC, '2'})
}

// imageRaster emits the bitmap as a single GS v 0 block.
func (d *Dummy) imageRaster(bm *escpos.Bitmap) {
	wb := escpos.RasterWidthBytes(bm.W)
	d.buf.Write([]byte{
		escpos.GS, 'v', '0', 0,
		byte(wb & 0xFF), byte(wb >> 8),
		byte(bm.H & 0xFF), byte(bm.H >> 8),
	})
	d.buf.Write(escpos.EncodeRaster(bm))
}

// Cut feeds the paper clear of the cutter, then cuts. Mode "PART" selects a
// partial cut; anything else cuts fully.
func (d *Dummy) Cut(mode string) {
	d.buf.Write([]byte{escpos.ESC, 'd', feedBeforeCut})
	v := byte(0)
	if mode == "PART" {
		v = 1
	}
	d.buf.Write([]byte{escpos.GS, 'V', v})
}
