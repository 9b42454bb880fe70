// Package verify checks that a generated call script reproduces an original
// ESC/POS byte stream. The script is executed through the in-process
// reference printer (packages script and printer); the resulting bytes are
// compared exactly first, then semantically: both streams are decoded and
// the command lists compared pairwise by kind and parameters, ignoring
// backend-internal bookkeeping.
package verify

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/script"
)

// Result is the structured outcome of a verification run.
type Result struct {
	OK bool

	// Mode records how the result was reached: "exact", "semantic",
	// "mismatch", or "error" when the script could not be executed.
	Mode string

	Message string
}

// Verify executes the script and compares its output against the original
// bytes. With semantic false only a byte-for-byte match passes.
func Verify(original []byte, scriptSrc string, semantic bool) Result {
	generated, err := script.Execute(scriptSrc)
	if err != nil {
		return Result{
			Mode:    "error",
			Message: fmt.Sprintf("verification error: %v", err),
		}
	}

	if bytes.Equal(original, generated) {
		return Result{
			OK:      true,
			Mode:    "exact",
			Message: "verification successful: byte-for-byte match",
		}
	}

	if semantic {
		ok, err := Equivalent(original, generated)
		if err != nil {
			return Result{
				Mode:    "error",
				Message: fmt.Sprintf("verification error: %v", err),
			}
		}
		if ok {
			return Result{
				OK:   true,
				Mode: "semantic",
				Message: "verification successful: semantically equivalent\n" +
					"(the backend adds bookkeeping commands such as code table\n" +
					"selection and feed-before-cut; these do not affect output)",
			}
		}
	}

	return Result{
		Mode:    "mismatch",
		Message: "verification failed:\n" + DiffReport(original, generated),
	}
}

// Equivalent decodes both byte streams and compares the command lists
// pairwise by (kind, params) after filtering backend-internal kinds. Image
// commands additionally compare bitmaps pixel for pixel.
func Equivalent(original, generated []byte) (bool, error) {
	oc, _, err := escpos.Parse(original)
	if err != nil {
		return false, fmt.Errorf("decode original: %w", err)
	}
	gc, _, err := escpos.Parse(generated)
	if err != nil {
		return false, fmt.Errorf("decode generated: %w", err)
	}
	return commandsEqual(filterInternal(oc), filterInternal(gc)), nil
}

func filterInternal(cmds []escpos.Command) []escpos.Command {
	out := make([]escpos.Command, 0, len(cmds))
	for _, c := range cmds {
		if c.Kind.BackendInternal() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func commandsEqual(a, b []escpos.Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		if !reflect.DeepEqual(a[i].Params, b[i].Params) {
			return false
		}
		if !a[i].Bitmap.Equal(b[i].Bitmap) {
			return false
		}
	}
	return true
}

// DiffReport describes both lengths and the first differing byte.
func DiffReport(original, generated []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "original length:  %d bytes\n", len(original))
	fmt.Fprintf(&b, "generated length: %d bytes\n", len(generated))

	n := len(original)
	if len(generated) < n {
		n = len(generated)
	}
	for i := 0; i < n; i++ {
		if original[i] != generated[i] {
			fmt.Fprintf(&b, "first difference at byte %d:\n", i)
			fmt.Fprintf(&b, "  original:  0x%02X (%d)\n", original[i], original[i])
			fmt.Fprintf(&b, "  generated: 0x%02X (%d)\n", generated[i], generated[i])
			return b.String()
		}
	}
	if len(original) != len(generated) {
		fmt.Fprintf(&b, "streams agree for the first %d bytes, lengths differ\n", n)
	}
	return b.String()
}
