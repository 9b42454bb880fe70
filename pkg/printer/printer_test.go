package printer

import (
	"bytes"
	"testing"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestDummyInit(t *testing.T) {
	p := NewDummy()
	p.Init()
	if !bytes.Equal(p.Output(), []byte{escpos.ESC, '@'}) {
		t.Errorf("unexpected output % X", p.Output())
	}
}

// The first text call selects code table 0 before the payload; later calls
// do not repeat it.
func TestDummyTextCodePage(t *testing.T) {
	p := NewDummy()
	p.Text("Hi")
	p.Text("!")

	want := []byte{escpos.ESC, 't', 0, 'H', 'i', '!'}
	if !bytes.Equal(p.Output(), want) {
		t.Errorf("got % X, want % X", p.Output(), want)
	}
}

func TestDummyTextReplacesNonPrintable(t *testing.T) {
	p := NewDummy()
	p.Text("A\x01B\nC")

	want := []byte{escpos.ESC, 't', 0, 'A', '?', 'B', escpos.LF, 'C'}
	if !bytes.Equal(p.Output(), want) {
		t.Errorf("got % X, want % X", p.Output(), want)
	}
}

// Set emits in a fixed order: align, bold, underline, size.
func TestDummySetOrder(t *testing.T) {
	p := NewDummy()
	p.Set(SetOptions{
		Align:     "center",
		Bold:      boolPtr(true),
		Underline: intPtr(1),
		Width:     2,
		Height:    3,
	})

	want := []byte{
		escpos.ESC, 'a', 1,
		escpos.ESC, 'E', 1,
		escpos.ESC, '-', 1,
		escpos.GS, '!', 0x21,
	}
	if !bytes.Equal(p.Output(), want) {
		t.Errorf("got % X, want % X", p.Output(), want)
	}
}

func TestDummySetPartial(t *testing.T) {
	p := NewDummy()
	p.Set(SetOptions{Bold: boolPtr(false)})
	if !bytes.Equal(p.Output(), []byte{escpos.ESC, 'E', 0}) {
		t.Errorf("got % X", p.Output())
	}

	p = NewDummy()
	p.Set(SetOptions{Width: 1, Height: 1})
	if !bytes.Equal(p.Output(), []byte{escpos.GS, '!', 0}) {
		t.Errorf("got % X", p.Output())
	}

	p = NewDummy()
	p.Set(SetOptions{})
	if len(p.Output()) != 0 {
		t.Errorf("empty options must emit nothing, got % X", p.Output())
	}
}

func TestDummyCut(t *testing.T) {
	p := NewDummy()
	p.Cut("FULL")
	want := []byte{escpos.ESC, 'd', 4, escpos.GS, 'V', 0}
	if !bytes.Equal(p.Output(), want) {
		t.Errorf("got % X, want % X", p.Output(), want)
	}

	p = NewDummy()
	p.Cut("PART")
	want = []byte{escpos.ESC, 'd', 4, escpos.GS, 'V', 1}
	if !bytes.Equal(p.Output(), want) {
		t.Errorf("got % X, want % X", p.Output(), want)
	}
}

func checkered(w, h int) *escpos.Bitmap {
	bm := escpos.NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bm.SetBlack(x, y, (x+y)&1 == 0)
		}
	}
	return bm
}

// A column image decodes back to the bitmap it carried, with the spacing
// commands around it and the bands fused again by the stripe merger.
func TestDummyImageColumnRoundTrip(t *testing.T) {
	bm := checkered(8, 48)
	p := NewDummy()
	if err := p.Image(bm, BitImageColumn); err != nil {
		t.Fatalf("image failed: %v", err)
	}

	cmds, warnings, err := escpos.Parse(p.Output())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	wantKinds := []escpos.Kind{
		escpos.KindLineSpacing, escpos.KindBitImage, escpos.KindDefaultSpacing,
	}
	if len(cmds) != len(wantKinds) {
		t.Fatalf("expected %d commands, got %d", len(wantKinds), len(cmds))
	}
	for i, k := range wantKinds {
		if cmds[i].Kind != k {
			t.Fatalf("command %d: expected %s, got %s", i, k, cmds[i].Kind)
		}
	}

	img := cmds[1]
	if img.Params["stripes"] != 2 {
		t.Errorf("expected 2 fused bands, got %v", img.Params["stripes"])
	}
	if !img.Bitmap.Equal(bm) {
		t.Errorf("decoded bitmap differs from input")
	}
}

// Heights that are not a band multiple come back padded with white rows.
func TestDummyImageColumnPadding(t *testing.T) {
	bm := checkered(6, 30)
	p := NewDummy()
	if err := p.Image(bm, BitImageColumn); err != nil {
		t.Fatalf("image failed: %v", err)
	}

	cmds, _, err := escpos.Parse(p.Output())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var img *escpos.Command
	for i := range cmds {
		if cmds[i].Kind == escpos.KindBitImage {
			img = &cmds[i]
		}
	}
	if img == nil {
		t.Fatalf("no image decoded")
	}
	if img.Bitmap.H != 48 {
		t.Fatalf("expected padded height 48, got %d", img.Bitmap.H)
	}
	for y := 0; y < 48; y++ {
		for x := 0; x < 6; x++ {
			want := y < 30 && bm.Black(x, y)
			if img.Bitmap.Black(x, y) != want {
				t.Fatalf("pixel (%d,%d): expected black=%v", x, y, want)
			}
		}
	}
}

func TestDummyImageRaster(t *testing.T) {
	bm := checkered(16, 5)
	p := NewDummy()
	if err := p.Image(bm, BitImageRaster); err != nil {
		t.Fatalf("image failed: %v", err)
	}

	cmds, warnings, err := escpos.Parse(p.Output())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}
	if len(cmds) != 1 || cmds[0].Kind != escpos.KindRaster {
		t.Fatalf("expected one raster command, got %v", cmds)
	}
	if !cmds[0].Bitmap.Equal(bm) {
		t.Errorf("decoded bitmap differs from input")
	}
}

func TestDummyImageErrors(t *testing.T) {
	p := NewDummy()
	if err := p.Image(nil, BitImageRaster); err == nil {
		t.Errorf("nil bitmap must fail")
	}
	if err := p.Image(escpos.NewBitmap(0, 4), BitImageRaster); err == nil {
		t.Errorf("empty bitmap must fail")
	}
	if err := p.Image(checkered(4, 4), ImageImpl("gradient")); err == nil {
		t.Errorf("unknown impl must fail")
	}
	if len(p.Output()) != 0 {
		t.Errorf("failed calls must not emit bytes")
	}
}
