package escpos

import "fmt"

// Kind identifies a decoded command family.
type Kind int

const (
	// KindInitialize is ESC @, printer reset.
	KindInitialize Kind = iota
	// KindBold is ESC E n, emphasis on/off.
	KindBold
	// KindUnderline is ESC - n, underline mode (0=off, 1=thin, 2=thick).
	KindUnderline
	// KindAlign is ESC a n, justification.
	KindAlign
	// KindPrintMode is ESC ! n, the combined print-mode bitmask.
	KindPrintMode
	// KindCharSize is GS ! n, character width/height multipliers.
	KindCharSize
	// KindCut is GS V m, paper cut.
	KindCut
	// KindText is a maximal run of printable ASCII bytes.
	KindText
	// KindLineFeed is a bare LF byte.
	KindLineFeed
	// KindBitImage is ESC * m nL nH, a column-major band image. After stripe
	// merging a single KindBitImage command may carry several fused bands.
	KindBitImage
	// KindRaster is GS v 0, a row-major raster image.
	KindRaster

	// The remaining kinds are bookkeeping commands that printer libraries
	// inject around content. They are decoded so that semantic comparison
	// can filter them by kind rather than by raw bytes.

	// KindCodePage is ESC t n, character code table selection.
	KindCodePage
	// KindFeed is ESC d n, print and feed n lines.
	KindFeed
	// KindLineSpacing is ESC 3 n, line spacing in motion units.
	KindLineSpacing
	// KindDefaultSpacing is ESC 2, reset to default line spacing.
	KindDefaultSpacing
)

var kindNames = map[Kind]string{
	KindInitialize:     "initialize",
	KindBold:           "bold",
	KindUnderline:      "underline",
	KindAlign:          "align",
	KindPrintMode:      "print_mode",
	KindCharSize:       "size",
	KindCut:            "cut",
	KindText:           "text",
	KindLineFeed:       "line_feed",
	KindBitImage:       "bit_image",
	KindRaster:         "raster",
	KindCodePage:       "codepage",
	KindFeed:           "feed",
	KindLineSpacing:    "line_spacing",
	KindDefaultSpacing: "default_spacing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// BackendInternal reports whether commands of this kind are bookkeeping that
// printer backends inject on their own (code table selection, feed before
// cut, line spacing around images). Semantic comparison ignores them.
func (k Kind) BackendInternal() bool {
	switch k {
	case KindCodePage, KindFeed, KindLineSpacing, KindDefaultSpacing:
		return true
	}
	return false
}

// Span is a half-open byte range [Start, End) into the parsed buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Command is one decoded ESC/POS command. Commands are produced in strictly
// increasing Span.Start order; spans never overlap and, together with warned
// skip positions and dropped CR bytes, cover the input exactly. A Command is
// immutable once the parse that produced it returns.
type Command struct {
	Kind   Kind
	Span   Span
	Params map[string]any

	// Bitmap is set for KindBitImage and KindRaster commands.
	Bitmap *Bitmap

	// Call is the rendered printer-API call for this command. Image commands
	// leave it to the code generator, which must first materialize the
	// bitmap (see package codegen).
	Call string

	// raw keeps the packed image payload of band commands so that the stripe
	// merger can rebuild a combined buffer column by column.
	raw []byte
}

// Warning records a recoverable decode anomaly. Warnings never abort a parse.
type Warning struct {
	Message string
	Offset  int
}

func (w Warning) String() string {
	return fmt.Sprintf("offset %d: %s", w.Offset, w.Message)
}
