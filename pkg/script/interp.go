package script

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/printer"
)

// Execute parses and runs a call script against the reference printer,
// returning the bytes the script captures via "escpos_output = p.output".
// Any callable outside the known printer API is an error.
func Execute(src string) ([]byte, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	script, err := p.ParseString(src)
	if err != nil {
		return nil, err
	}
	return Run(script)
}

// Run interprets a parsed script.
func Run(script *Script) ([]byte, error) {
	in := &interp{
		printers: map[string]*printer.Dummy{},
		images:   map[string]*escpos.Bitmap{},
	}
	for _, stmt := range script.Stmts {
		if err := in.exec(stmt); err != nil {
			return nil, err
		}
	}
	if !in.outputSet {
		return nil, fmt.Errorf("script never captured printer output")
	}
	return in.output, nil
}

type interp struct {
	printers  map[string]*printer.Dummy
	images    map[string]*escpos.Bitmap
	output    []byte
	outputSet bool
}

func (in *interp) exec(stmt *Stmt) error {
	switch {
	case stmt.From != nil, stmt.Import != nil:
		// Imports declare collaborator capabilities; nothing to run.
		return nil
	case stmt.Assign != nil:
		return in.assign(stmt.Assign)
	case stmt.Call != nil:
		return in.call(stmt.Call)
	}
	return nil
}

func (in *interp) assign(a *AssignStmt) error {
	ref := a.Value.Ref
	if ref == nil {
		return fmt.Errorf("cannot assign literal to %s", a.Name)
	}
	name := strings.Join(ref.Name, ".")

	switch {
	case name == "Dummy" && ref.Called:
		if len(ref.Args) != 0 {
			return fmt.Errorf("Dummy() takes no arguments")
		}
		in.printers[a.Name] = printer.NewDummy()
		return nil

	case name == "Image.open" && ref.Called:
		bm, err := in.evalImageOpen(ref)
		if err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
		in.images[a.Name] = bm
		return nil

	case !ref.Called && len(ref.Name) == 2 && ref.Name[1] == "output":
		d, ok := in.printers[ref.Name[0]]
		if !ok {
			return fmt.Errorf("unknown printer %q", ref.Name[0])
		}
		in.output = d.Output()
		in.outputSet = true
		return nil
	}
	return fmt.Errorf("cannot evaluate %s", name)
}

// evalImageOpen unpacks the image materialization idiom
// Image.open(io.BytesIO(base64.b64decode('<png>'))).
func (in *interp) evalImageOpen(ref *RefExpr) (*escpos.Bitmap, error) {
	inner, err := soleCallArg(ref, "Image.open", "io.BytesIO")
	if err != nil {
		return nil, err
	}
	decode, err := soleCallArg(inner, "io.BytesIO", "base64.b64decode")
	if err != nil {
		return nil, err
	}
	if len(decode.Args) != 1 || decode.Args[0].Value.Str == nil {
		return nil, fmt.Errorf("base64.b64decode expects one string argument")
	}
	png, err := base64.StdEncoding.DecodeString(string(*decode.Args[0].Value.Str))
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	return escpos.DecodePNG(png)
}

// soleCallArg checks that outer has exactly one argument, a call to want,
// and returns that inner call.
func soleCallArg(outer *RefExpr, outerName, want string) (*RefExpr, error) {
	if len(outer.Args) != 1 {
		return nil, fmt.Errorf("%s expects one argument", outerName)
	}
	inner := outer.Args[0].Value.Ref
	if inner == nil || !inner.Called || strings.Join(inner.Name, ".") != want {
		return nil, fmt.Errorf("%s expects a %s(...) argument", outerName, want)
	}
	return inner, nil
}

func (in *interp) call(ref *RefExpr) error {
	if !ref.Called || len(ref.Name) != 2 {
		return fmt.Errorf("unsupported statement %s", strings.Join(ref.Name, "."))
	}
	d, ok := in.printers[ref.Name[0]]
	if !ok {
		return fmt.Errorf("unknown printer %q", ref.Name[0])
	}

	switch method := ref.Name[1]; method {
	case "hw":
		if len(ref.Args) != 1 || ref.Args[0].Value.Str == nil ||
			string(*ref.Args[0].Value.Str) != "init" {
			return fmt.Errorf("hw() supports only 'init'")
		}
		d.Init()
		return nil

	case "set":
		opts, err := in.setOptions(ref.Args)
		if err != nil {
			return err
		}
		d.Set(opts)
		return nil

	case "text":
		if len(ref.Args) != 1 || ref.Args[0].Value.Str == nil {
			return fmt.Errorf("text() expects one string argument")
		}
		d.Text(string(*ref.Args[0].Value.Str))
		return nil

	case "image":
		return in.imageCall(d, ref.Args)

	case "cut":
		mode := "FULL"
		for _, a := range ref.Args {
			if a.Name != "mode" || a.Value.Str == nil {
				return fmt.Errorf("cut() supports only mode='...'")
			}
			mode = string(*a.Value.Str)
		}
		d.Cut(mode)
		return nil
	}
	return fmt.Errorf("unknown printer method %q", ref.Name[1])
}

func (in *interp) setOptions(args []*Arg) (printer.SetOptions, error) {
	var opts printer.SetOptions
	for _, a := range args {
		switch a.Name {
		case "align":
			if a.Value.Str == nil {
				return opts, fmt.Errorf("set(align=...) expects a string")
			}
			opts.Align = string(*a.Value.Str)
		case "bold":
			if a.Value.Bool == nil {
				return opts, fmt.Errorf("set(bold=...) expects True/False")
			}
			b := bool(*a.Value.Bool)
			opts.Bold = &b
		case "underline":
			if a.Value.Int == nil {
				return opts, fmt.Errorf("set(underline=...) expects an integer")
			}
			u := *a.Value.Int
			opts.Underline = &u
		case "width":
			if a.Value.Int == nil {
				return opts, fmt.Errorf("set(width=...) expects an integer")
			}
			opts.Width = *a.Value.Int
		case "height":
			if a.Value.Int == nil {
				return opts, fmt.Errorf("set(height=...) expects an integer")
			}
			opts.Height = *a.Value.Int
		case "":
			return opts, fmt.Errorf("set() takes keyword arguments only")
		default:
			return opts, fmt.Errorf("unknown set() keyword %q", a.Name)
		}
	}
	return opts, nil
}

func (in *interp) imageCall(d *printer.Dummy, args []*Arg) error {
	if len(args) != 2 {
		return fmt.Errorf("image() expects an image and impl=")
	}
	ref := args[0].Value.Ref
	if args[0].Name != "" || ref == nil || ref.Called || len(ref.Name) != 1 {
		return fmt.Errorf("image() expects an image variable")
	}
	bm, ok := in.images[ref.Name[0]]
	if !ok {
		return fmt.Errorf("unknown image %q", ref.Name[0])
	}
	if args[1].Name != "impl" || args[1].Value.Str == nil {
		return fmt.Errorf("image() expects impl='...'")
	}
	return d.Image(bm, printer.ImageImpl(string(*args[1].Value.Str)))
}
