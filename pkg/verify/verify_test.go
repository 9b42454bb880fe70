package verify

import (
	"strings"
	"testing"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/codegen"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/printer"
)

func boolPtr(b bool) *bool { return &b }

// convert decodes a stream and regenerates the call script for it.
func convert(t *testing.T, data []byte) string {
	t.Helper()
	cmds, _, err := escpos.Parse(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return codegen.Generate(cmds)
}

// A stream produced by the reference printer itself round-trips exactly:
// the regenerated script re-injects the same bookkeeping at the same spots.
func TestRoundTripExact(t *testing.T) {
	p := printer.NewDummy()
	p.Init()
	p.Set(printer.SetOptions{Align: "center", Bold: boolPtr(true)})
	p.Text("Hello, World!\n")
	p.Text("This is a test.\n")
	p.Cut("FULL")
	original := p.Output()

	res := Verify(original, convert(t, original), true)
	if !res.OK {
		t.Fatalf("round trip failed: %s", res.Message)
	}
	if res.Mode != "exact" {
		t.Errorf("expected exact match, got %s: %s", res.Mode, res.Message)
	}
}

// A handwritten stream without backend bookkeeping matches only
// semantically: the regenerated stream adds the codepage selection and the
// feed before the cut.
func TestRoundTripSemantic(t *testing.T) {
	var original []byte
	original = append(original, escpos.ESC, '@')
	original = append(original, []byte("Receipt")...)
	original = append(original, escpos.LF)
	original = append(original, escpos.GS, 'V', 0x00)

	script := convert(t, original)

	res := Verify(original, script, true)
	if !res.OK {
		t.Fatalf("semantic round trip failed: %s", res.Message)
	}
	if res.Mode != "semantic" {
		t.Errorf("expected semantic match, got %s: %s", res.Mode, res.Message)
	}

	// The same pair fails under strict comparison.
	strict := Verify(original, script, false)
	if strict.OK || strict.Mode != "mismatch" {
		t.Errorf("expected strict mismatch, got %+v", strict)
	}
}

func TestRoundTripColumnImage(t *testing.T) {
	bm := escpos.NewBitmap(12, 48)
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			bm.SetBlack(x, y, (x*3+y)%7 < 2)
		}
	}

	p := printer.NewDummy()
	p.Init()
	if err := p.Image(bm, printer.BitImageColumn); err != nil {
		t.Fatalf("image failed: %v", err)
	}
	p.Cut("FULL")
	original := p.Output()

	res := Verify(original, convert(t, original), true)
	if !res.OK {
		t.Fatalf("column image round trip failed: %s", res.Message)
	}
	if res.Mode != "exact" {
		t.Errorf("expected exact match, got %s: %s", res.Mode, res.Message)
	}
}

func TestRoundTripRasterImage(t *testing.T) {
	bm := escpos.NewBitmap(16, 9)
	for i := 0; i < 9; i++ {
		bm.SetBlack(i, i, true)
	}

	p := printer.NewDummy()
	if err := p.Image(bm, printer.BitImageRaster); err != nil {
		t.Fatalf("image failed: %v", err)
	}
	original := p.Output()

	res := Verify(original, convert(t, original), true)
	if !res.OK {
		t.Fatalf("raster round trip failed: %s", res.Message)
	}
}

func TestVerifyScriptError(t *testing.T) {
	res := Verify([]byte{escpos.ESC, '@'}, "p = Dummy()\np.launch()\n", true)
	if res.OK || res.Mode != "error" {
		t.Errorf("expected error result, got %+v", res)
	}
	if !strings.Contains(res.Message, "verification error") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestVerifyMismatch(t *testing.T) {
	original := []byte{escpos.ESC, '@'}
	script := "p = Dummy()\np.text('different')\nescpos_output = p.output\n"

	res := Verify(original, script, true)
	if res.OK || res.Mode != "mismatch" {
		t.Fatalf("expected mismatch, got %+v", res)
	}
	if !strings.Contains(res.Message, "first difference at byte") &&
		!strings.Contains(res.Message, "lengths differ") {
		t.Errorf("diff report missing detail: %s", res.Message)
	}
}

func TestEquivalentFiltersBookkeeping(t *testing.T) {
	// Same content, one side padded with bookkeeping.
	a := []byte{escpos.ESC, '@', 'H', 'i'}
	b := []byte{
		escpos.ESC, '@',
		escpos.ESC, 't', 0,
		'H', 'i',
		escpos.ESC, 'd', 4,
	}

	ok, err := Equivalent(a, b)
	if err != nil {
		t.Fatalf("equivalent failed: %v", err)
	}
	if !ok {
		t.Errorf("bookkeeping should be ignored")
	}

	// Differing content is still caught.
	c := []byte{escpos.ESC, '@', 'H', 'o'}
	ok, err = Equivalent(a, c)
	if err != nil {
		t.Fatalf("equivalent failed: %v", err)
	}
	if ok {
		t.Errorf("content difference missed")
	}
}

func TestDiffReport(t *testing.T) {
	report := DiffReport([]byte{1, 2, 3}, []byte{1, 9, 3})
	for _, want := range []string{
		"original length:  3 bytes",
		"generated length: 3 bytes",
		"first difference at byte 1",
		"0x02 (2)",
		"0x09 (9)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	report = DiffReport([]byte{1, 2}, []byte{1, 2, 3})
	if !strings.Contains(report, "lengths differ") {
		t.Errorf("length-only diff not reported:\n%s", report)
	}
}
