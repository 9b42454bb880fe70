package script

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/printer"
)

const minimalScript = `from escpos.printer import Dummy

# Create a Dummy printer to capture output
p = Dummy()

# Execute commands
p.hw('init')
p.set(align='center', bold=True)
p.text('Hello')
p.text('\n')
p.cut(mode='FULL')

# Get the generated ESC-POS bytes
escpos_output = p.output
`

func TestParseScript(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("parser init failed: %v", err)
	}

	script, err := parser.ParseString(minimalScript)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// from-import, two assignments, five calls.
	if len(script.Stmts) != 8 {
		t.Fatalf("expected 8 statements, got %d", len(script.Stmts))
	}

	if script.Stmts[0].From == nil || script.Stmts[0].From.Module != "escpos.printer" {
		t.Errorf("statement 0: expected from-import of escpos.printer")
	}
	if script.Stmts[1].Assign == nil || script.Stmts[1].Assign.Name != "p" {
		t.Errorf("statement 1: expected assignment to p")
	}

	call := script.Stmts[3].Call
	if call == nil || strings.Join(call.Name, ".") != "p.set" {
		t.Fatalf("statement 3: expected p.set call, got %+v", script.Stmts[3])
	}
	if len(call.Args) != 2 || call.Args[0].Name != "align" || call.Args[1].Name != "bold" {
		t.Errorf("p.set arguments parsed wrong: %+v", call.Args)
	}
	if call.Args[1].Value.Bool == nil || !bool(*call.Args[1].Value.Bool) {
		t.Errorf("bold=True not captured")
	}

	last := script.Stmts[7].Assign
	if last == nil || last.Name != "escpos_output" {
		t.Errorf("final statement: expected output capture, got %+v", script.Stmts[7])
	}
}

func TestPyStringEscapes(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("parser init failed: %v", err)
	}

	tests := []struct {
		literal string
		want    string
	}{
		{`'plain'`, "plain"},
		{`'\n'`, "\n"},
		{`'a\tb'`, "a\tb"},
		{`'it\'s'`, "it's"},
		{`'back\\slash'`, `back\slash`},
	}

	for _, tt := range tests {
		script, err := parser.ParseString("x = " + tt.literal)
		if err != nil {
			t.Fatalf("parse of %s failed: %v", tt.literal, err)
		}
		got := script.Stmts[0].Assign.Value.Str
		if got == nil || string(*got) != tt.want {
			t.Errorf("%s: got %v, want %q", tt.literal, got, tt.want)
		}
	}
}

func TestExecuteMinimal(t *testing.T) {
	got, err := Execute(minimalScript)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	bold := true
	want := printer.NewDummy()
	want.Init()
	want.Set(printer.SetOptions{Align: "center", Bold: &bold})
	want.Text("Hello")
	want.Text("\n")
	want.Cut("FULL")

	if !bytes.Equal(got, want.Output()) {
		t.Errorf("got % X, want % X", got, want.Output())
	}
}

func TestExecuteImage(t *testing.T) {
	bm := escpos.NewBitmap(8, 8)
	for i := 0; i < 8; i++ {
		bm.SetBlack(i, i, true)
	}
	png, err := bm.EncodePNG()
	if err != nil {
		t.Fatalf("png encode failed: %v", err)
	}

	src := fmt.Sprintf(`from escpos.printer import Dummy
from PIL import Image
import base64
import io

p = Dummy()
img = Image.open(io.BytesIO(base64.b64decode('%s')))
p.image(img, impl='bitImageRaster')
escpos_output = p.output
`, base64.StdEncoding.EncodeToString(png))

	got, err := Execute(src)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	want := printer.NewDummy()
	if err := want.Image(bm, printer.BitImageRaster); err != nil {
		t.Fatalf("image failed: %v", err)
	}
	if !bytes.Equal(got, want.Output()) {
		t.Errorf("got % X, want % X", got, want.Output())
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no output capture", "p = Dummy()\np.text('x')\n"},
		{"unknown printer", "p = Dummy()\nq.text('x')\nescpos_output = p.output\n"},
		{"unknown method", "p = Dummy()\np.qr('data')\nescpos_output = p.output\n"},
		{"hw non-init", "p = Dummy()\np.hw('reset')\nescpos_output = p.output\n"},
		{"positional set", "p = Dummy()\np.set(1)\nescpos_output = p.output\n"},
		{"unknown set keyword", "p = Dummy()\np.set(flip=True)\nescpos_output = p.output\n"},
		{"unknown image variable", "p = Dummy()\np.image(img, impl='bitImageRaster')\nescpos_output = p.output\n"},
		{"free function call", "p = Dummy()\nexec('boom')\nescpos_output = p.output\n"},
		{"dummy with arguments", "p = Dummy(9600)\nescpos_output = p.output\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Execute(tt.src); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestExecuteCommentsIgnored(t *testing.T) {
	src := "# leading comment\np = Dummy()\n# between\nescpos_output = p.output\n"
	got, err := Execute(src)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got % X", got)
	}
}
