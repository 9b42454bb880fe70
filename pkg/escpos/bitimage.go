package escpos

// Band image support (ESC * m nL nH d1..dk).
//
// A band command carries a column-major image: width columns, each packed
// into bytesPerColumn bytes, most-significant bit at the top of each 8-row
// slice. Tall images are transported as consecutive bands; see merge.go.

// BandGeometry maps an ESC * mode byte to its bytes-per-column and band
// height in dots. Modes 0/1 are 8-dot, 2/3 are 16-dot, 32/33 are 24-dot.
// Unrecognized modes report ok false and the 8-dot geometry.
func BandGeometry(mode byte) (bytesPerColumn, dots int, ok bool) {
	switch mode {
	case 0, 1:
		return 1, 8, true
	case 2, 3:
		return 2, 16, true
	case 32, 33:
		return 3, 24, true
	}
	return 1, 8, false
}

func (p *parser) bandImage() {
	start := p.pos
	if p.pos+5 > len(p.data) {
		p.warnf(start, "truncated ESC * header at end of input")
		p.pos += 2
		return
	}

	mode := p.data[p.pos+2]
	width := int(p.data[p.pos+3]) | int(p.data[p.pos+4])<<8

	bpc, _, ok := BandGeometry(mode)
	if !ok {
		p.warnf(start, "unrecognized bit image mode %d, assuming 8-dot", mode)
	}

	need := width * bpc
	if p.pos+5+need > len(p.data) {
		p.warnf(start, "bit image data truncated: need %d bytes, have %d", need, len(p.data)-p.pos-5)
		p.pos += 2
		return
	}

	raw := p.data[p.pos+5 : p.pos+5+need]
	cmd := p.emit(KindBitImage, start, p.pos+5+need, map[string]any{
		"mode":    int(mode),
		"width":   width,
		"stripes": 1,
	})
	cmd.Bitmap = DecodeBand(width, bpc, raw)
	cmd.raw = raw
	p.pos += 5 + need
}

// DecodeBand unpacks column-major band data into a bitmap of height
// bytesPerColumn*8. Within each byte the most-significant bit is the topmost
// pixel of its 8-row slice.
func DecodeBand(width, bytesPerColumn int, data []byte) *Bitmap {
	bm := NewBitmap(width, bytesPerColumn*8)
	idx := 0
	for x := 0; x < width; x++ {
		for b := 0; b < bytesPerColumn; b++ {
			if idx >= len(data) {
				return bm
			}
			v := data[idx]
			idx++
			for i := 0; i < 8; i++ {
				bm.SetBlack(x, b*8+i, v&(1<<(7-i)) != 0)
			}
		}
	}
	return bm
}

// EncodeBand packs rows [top, top+dots) of a bitmap into column-major band
// data, the exact inverse of DecodeBand. Rows beyond the bitmap are white.
func EncodeBand(bm *Bitmap, top, dots int) []byte {
	bytesPerColumn := dots / 8
	out := make([]byte, bm.W*bytesPerColumn)
	idx := 0
	for x := 0; x < bm.W; x++ {
		for b := 0; b < bytesPerColumn; b++ {
			var v byte
			for i := 0; i < 8; i++ {
				if bm.Black(x, top+b*8+i) {
					v |= 1 << (7 - i)
				}
			}
			out[idx] = v
			idx++
		}
	}
	return out
}
