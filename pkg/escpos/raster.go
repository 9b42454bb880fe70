package escpos

// Raster image support (GS v 0 m xL xH yL yH d1..dk).
//
// Raster data is row-major: each row is widthBytes bytes, one byte packing
// 8 horizontal pixels with the most-significant bit leftmost.

func (p *parser) rasterImage() {
	start := p.pos
	if p.pos+8 > len(p.data) {
		p.warnf(start, "truncated GS v header at end of input")
		p.pos += 2
		return
	}

	sub := p.data[p.pos+2]
	if sub != 0x00 && sub != 0x30 {
		p.warnf(start, "unrecognized GS v sub-command 0x%02X", sub)
		p.pos += 2
		return
	}

	mode := p.data[p.pos+3]
	widthBytes := int(p.data[p.pos+4]) | int(p.data[p.pos+5])<<8
	heightDots := int(p.data[p.pos+6]) | int(p.data[p.pos+7])<<8

	need := widthBytes * heightDots
	if p.pos+8+need > len(p.data) {
		p.warnf(start, "raster data truncated: need %d bytes, have %d", need, len(p.data)-p.pos-8)
		p.pos += 2
		return
	}

	raw := p.data[p.pos+8 : p.pos+8+need]
	cmd := p.emit(KindRaster, start, p.pos+8+need, map[string]any{
		"mode":   int(mode),
		"width":  widthBytes * 8,
		"height": heightDots,
	})
	cmd.Bitmap = DecodeRaster(widthBytes, heightDots, raw)
	p.pos += 8 + need
}

// DecodeRaster unpacks row-major raster data into a widthBytes*8 wide bitmap.
// The most-significant bit of each byte is the leftmost pixel.
func DecodeRaster(widthBytes, heightDots int, data []byte) *Bitmap {
	bm := NewBitmap(widthBytes*8, heightDots)
	idx := 0
	for y := 0; y < heightDots; y++ {
		for xb := 0; xb < widthBytes; xb++ {
			if idx >= len(data) {
				return bm
			}
			v := data[idx]
			idx++
			for i := 0; i < 8; i++ {
				bm.SetBlack(xb*8+(7-i), y, v&(1<<i) != 0)
			}
		}
	}
	return bm
}

// RasterWidthBytes returns the packed row width for a bitmap.
func RasterWidthBytes(w int) int { return (w + 7) / 8 }

// EncodeRaster packs a bitmap into row-major raster data, the exact inverse
// of DecodeRaster. Columns beyond the bitmap width pad with white.
func EncodeRaster(bm *Bitmap) []byte {
	widthBytes := RasterWidthBytes(bm.W)
	out := make([]byte, widthBytes*bm.H)
	idx := 0
	for y := 0; y < bm.H; y++ {
		for xb := 0; xb < widthBytes; xb++ {
			var v byte
			for i := 0; i < 8; i++ {
				if bm.Black(xb*8+(7-i), y) {
					v |= 1 << i
				}
			}
			out[idx] = v
			idx++
		}
	}
	return out
}
