// Package escpos decodes raw ESC/POS printer byte streams into structured
// command sequences.
//
// ESC/POS is the mixed text/escape-sequence command language understood by
// most receipt printers. A stream interleaves printable ASCII runs with
// ESC-prefixed (0x1B) and GS-prefixed (0x1D) control sequences, including
// two incompatible bit-packed image encodings:
//
//   - ESC * "band" images: column-major, 8/16/24 dots tall per command
//   - GS v 0 "raster" images: row-major, one byte per 8 horizontal pixels
//
// # Overview
//
// The package provides:
//   - Parse: tokenize a byte buffer into an ordered []Command plus []Warning
//   - Bitmap: a canonical bi-level bitmap implementing image.Image
//   - Band/raster codecs: decode packed image data, and the inverse encoders
//     used by the reference re-encoder
//   - Stripe merging: tall images arrive as consecutive height-limited bands;
//     Parse fuses same-width/same-mode runs back into one bitmap
//
// # Usage
//
//	cmds, warnings, err := escpos.Parse(data)
//	if err != nil {
//		// input rejected before parsing (e.g. over MaxInputSize)
//	}
//	for _, w := range warnings {
//		fmt.Printf("offset %d: %s\n", w.Offset, w.Message)
//	}
//	for _, c := range cmds {
//		fmt.Println(c.Kind, c.Call)
//	}
//
// Parsing is best-effort: unknown or truncated sequences produce warnings and
// the scanner resumes at the next safe position. A parse always completes.
package escpos
