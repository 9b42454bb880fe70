// Package codegen renders a decoded command sequence as a python-escpos call
// script: an import preamble, one call per command, and an output capture.
// The script is plain text; executing it is the job of package script, which
// interprets the fixed call grammar against the reference printer.
package codegen

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
)

// Generate renders the command list as a complete script. Calls appear in
// command order, one per command. When the list contains image commands the
// preamble additionally declares the PNG-decode capability (PIL, base64, io)
// used to materialize embedded bitmaps.
//
// A bitmap that fails PNG encoding degrades to a comment marker for that one
// command; generation itself never fails.
func Generate(cmds []escpos.Command) string {
	hasImage := false
	for _, c := range cmds {
		if c.Bitmap != nil {
			hasImage = true
			break
		}
	}

	var b strings.Builder
	b.WriteString("from escpos.printer import Dummy\n")
	if hasImage {
		b.WriteString("from PIL import Image\n")
		b.WriteString("import base64\n")
		b.WriteString("import io\n")
	}
	b.WriteString("\n")
	b.WriteString("# Create a Dummy printer to capture output\n")
	b.WriteString("p = Dummy()\n")
	b.WriteString("\n")
	b.WriteString("# Execute commands\n")

	for _, c := range cmds {
		switch c.Kind {
		case escpos.KindBitImage:
			writeImage(&b, &c, "bitImageColumn")
		case escpos.KindRaster:
			writeImage(&b, &c, "bitImageRaster")
		default:
			b.WriteString(c.Call)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("# Get the generated ESC-POS bytes\n")
	b.WriteString("escpos_output = p.output\n")
	return b.String()
}

// writeImage binds the command's bitmap to the img variable via an embedded
// base64 PNG, then emits the image call. The variable is reused across image
// commands; the script executes top to bottom, so each call sees the bitmap
// bound immediately above it.
func writeImage(b *strings.Builder, c *escpos.Command, impl string) {
	png, err := c.Bitmap.EncodePNG()
	if err != nil {
		fmt.Fprintf(b, "# image omitted (%dx%d): %v\n", c.Bitmap.W, c.Bitmap.H, err)
		return
	}
	fmt.Fprintf(b, "img = Image.open(io.BytesIO(base64.b64decode('%s')))\n",
		base64.StdEncoding.EncodeToString(png))
	fmt.Fprintf(b, "p.image(img, impl='%s')\n", impl)
}
