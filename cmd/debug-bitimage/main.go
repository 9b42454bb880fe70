package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
)

// Extracts ESC * band sequences from a raw stream and renders them under
// each plausible bit-order interpretation, one PNG per strategy. Handy when
// a stream from an unfamiliar printer produces shredded-looking images.

type stripe struct {
	mode  byte
	width int
	data  []byte
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-bitimage <input.bin>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Error reading input: %v", err)
	}

	stripes := extractStripes(data)
	if len(stripes) == 0 {
		fmt.Println("No ESC * sequences found")
		return
	}

	fmt.Printf("Found %d band sequences:\n", len(stripes))
	for i, s := range stripes {
		bpc, dots, _ := escpos.BandGeometry(s.mode)
		fmt.Printf("  [%d] mode=%d width=%d (%d bytes/column, %d dots)\n",
			i, s.mode, s.width, bpc, dots)
	}

	strategies := []struct {
		name    string
		msbTop  bool
		reverse bool
	}{
		{"msb-top", true, false},
		{"lsb-top", false, false},
		{"msb-top-reversed", true, true},
	}

	for _, st := range strategies {
		bm := stackStripes(stripes, st.msbTop, st.reverse)
		if bm == nil {
			continue
		}
		name := fmt.Sprintf("bitimage-%s.png", st.name)
		png, err := bm.EncodePNG()
		if err != nil {
			log.Fatalf("Error encoding %s: %v", name, err)
		}
		if err := os.WriteFile(name, png, 0644); err != nil {
			log.Fatalf("Error writing %s: %v", name, err)
		}
		fmt.Printf("Wrote %s (%dx%d)\n", name, bm.W, bm.H)
	}
}

// extractStripes scans for ESC * headers and slices out each band payload.
func extractStripes(data []byte) []stripe {
	var out []stripe
	for i := 0; i+4 < len(data); i++ {
		if data[i] != escpos.ESC || data[i+1] != '*' {
			continue
		}
		mode := data[i+2]
		bpc, _, ok := escpos.BandGeometry(mode)
		if !ok {
			continue
		}
		width := int(data[i+3]) | int(data[i+4])<<8
		start := i + 5
		end := start + width*bpc
		if end > len(data) {
			continue
		}
		out = append(out, stripe{mode: mode, width: width, data: data[start:end]})
		i = end - 1
	}
	return out
}

// stackStripes decodes every stripe under the given bit order and stacks
// them vertically. Stripes of differing widths are padded to the widest.
func stackStripes(stripes []stripe, msbTop, reverse bool) *escpos.Bitmap {
	maxW, totalH := 0, 0
	bitmaps := make([]*escpos.Bitmap, 0, len(stripes))
	for _, s := range stripes {
		bpc, dots, _ := escpos.BandGeometry(s.mode)
		bm := decodeWith(s.width, bpc, dots, s.data, msbTop, reverse)
		bitmaps = append(bitmaps, bm)
		if bm.W > maxW {
			maxW = bm.W
		}
		totalH += bm.H
	}
	if maxW == 0 || totalH == 0 {
		return nil
	}

	out := escpos.NewBitmap(maxW, totalH)
	y := 0
	for _, bm := range bitmaps {
		for row := 0; row < bm.H; row++ {
			for x := 0; x < bm.W; x++ {
				out.SetBlack(x, y+row, bm.Black(x, row))
			}
		}
		y += bm.H
	}
	return out
}

// decodeWith is the column-major band decode with a selectable bit order.
func decodeWith(width, bpc, dots int, data []byte, msbTop, reverse bool) *escpos.Bitmap {
	bm := escpos.NewBitmap(width, dots)
	for x := 0; x < width; x++ {
		for b := 0; b < bpc; b++ {
			src := b
			if reverse {
				src = bpc - 1 - b
			}
			v := data[x*bpc+src]
			for i := 0; i < 8; i++ {
				bit := v & (1 << (7 - i))
				if !msbTop {
					bit = v & (1 << i)
				}
				bm.SetBlack(x, b*8+i, bit != 0)
			}
		}
	}
	return bm
}
