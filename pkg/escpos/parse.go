package escpos

import (
	"fmt"
	"strings"
)

// Prefix and command bytes.
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	LF  byte = 0x0A
	CR  byte = 0x0D

	escInit           byte = 0x40 // ESC @
	escBold           byte = 0x45 // ESC E
	escUnderline      byte = 0x2D // ESC -
	escAlign          byte = 0x61 // ESC a
	escPrintMode      byte = 0x21 // ESC !
	escBitImage       byte = 0x2A // ESC *
	escCodePage       byte = 0x74 // ESC t
	escFeed           byte = 0x64 // ESC d
	escLineSpacing    byte = 0x33 // ESC 3
	escDefaultSpacing byte = 0x32 // ESC 2

	gsCut      byte = 0x56 // GS V
	gsCharSize byte = 0x21 // GS !
	gsRaster   byte = 0x76 // GS v

	printableLow  byte = 0x20
	printableHigh byte = 0x7E
)

// Print mode bits (ESC !).
const (
	printModeBold         = 0x08
	printModeDoubleHeight = 0x10
	printModeDoubleWidth  = 0x20
)

// MaxInputSize bounds the accepted input length. Exceeding it is a fatal
// input error, not a warning.
const MaxInputSize = 1_000_000

var alignNames = map[byte]string{0: "left", 1: "center", 2: "right"}

// Parse tokenizes an ESC/POS byte buffer into an ordered command list and a
// warning list. It never fails on malformed command data: unknown bytes,
// unrecognized sub-commands, and truncated sequences produce warnings and the
// scanner resumes at the next safe position. The only error is an input
// larger than MaxInputSize, rejected before any scanning.
//
// Runs of same-width/same-mode band images are merged into single commands
// before the list is returned (see mergeStripes). All parse state is local to
// the call; nothing is shared between invocations.
func Parse(data []byte) ([]Command, []Warning, error) {
	if len(data) > MaxInputSize {
		return nil, nil, fmt.Errorf("input is %d bytes, maximum is %d", len(data), MaxInputSize)
	}

	p := &parser{data: data}
	for p.pos < len(data) {
		switch b := data[p.pos]; {
		case b == ESC:
			p.escSequence()
		case b == GS:
			p.gsSequence()
		case b == LF:
			p.emit(KindLineFeed, p.pos, p.pos+1, nil)
			p.pos++
		case b == CR:
			// Paired with LF by convention; drop silently.
			p.pos++
		case b >= printableLow && b <= printableHigh:
			p.textRun()
		default:
			p.warnf(p.pos, "unknown byte 0x%02X", b)
			p.pos++
		}
	}

	return mergeStripes(p.cmds), p.warnings, nil
}

type parser struct {
	data     []byte
	pos      int
	cmds     []Command
	warnings []Warning
}

func (p *parser) warnf(offset int, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

func (p *parser) emit(kind Kind, start, end int, params map[string]any) *Command {
	p.cmds = append(p.cmds, Command{
		Kind:   kind,
		Span:   Span{Start: start, End: end},
		Params: params,
	})
	cmd := &p.cmds[len(p.cmds)-1]
	cmd.Call = renderCall(cmd)
	return cmd
}

// arg returns the single argument byte of a 3-byte sequence, or reports a
// truncation warning and advances past the prefix.
func (p *parser) arg(name string) (byte, bool) {
	if p.pos+2 >= len(p.data) {
		p.warnf(p.pos, "truncated %s command at end of input", name)
		p.pos += 2
		return 0, false
	}
	return p.data[p.pos+2], true
}

func (p *parser) escSequence() {
	start := p.pos
	if p.pos+1 >= len(p.data) {
		p.warnf(start, "truncated ESC at end of input")
		p.pos++
		return
	}

	switch p.data[p.pos+1] {
	case escInit:
		p.emit(KindInitialize, start, start+2, nil)
		p.pos += 2

	case escBold:
		if v, ok := p.arg("ESC E"); ok {
			p.emit(KindBold, start, start+3, map[string]any{"enabled": v != 0})
			p.pos += 3
		}

	case escUnderline:
		if v, ok := p.arg("ESC -"); ok {
			// Mode byte passed through verbatim; out-of-range values are
			// preserved rather than rejected.
			p.emit(KindUnderline, start, start+3, map[string]any{"mode": int(v)})
			p.pos += 3
		}

	case escAlign:
		if v, ok := p.arg("ESC a"); ok {
			align, ok := alignNames[v]
			if !ok {
				align = "left"
			}
			p.emit(KindAlign, start, start+3, map[string]any{"align": align})
			p.pos += 3
		}

	case escPrintMode:
		if v, ok := p.arg("ESC !"); ok {
			bold := v&printModeBold != 0
			dh := v&printModeDoubleHeight != 0
			dw := v&printModeDoubleWidth != 0
			size := "normal"
			switch {
			case dh && dw:
				size = "2x"
			case dw:
				size = "2w"
			case dh:
				size = "2h"
			}
			p.emit(KindPrintMode, start, start+3, map[string]any{
				"mode": int(v),
				"bold": bold,
				"size": size,
			})
			p.pos += 3
		}

	case escBitImage:
		p.bandImage()

	case escCodePage:
		if v, ok := p.arg("ESC t"); ok {
			p.emit(KindCodePage, start, start+3, map[string]any{"table": int(v)})
			p.pos += 3
		}

	case escFeed:
		if v, ok := p.arg("ESC d"); ok {
			p.emit(KindFeed, start, start+3, map[string]any{"lines": int(v)})
			p.pos += 3
		}

	case escLineSpacing:
		if v, ok := p.arg("ESC 3"); ok {
			p.emit(KindLineSpacing, start, start+3, map[string]any{"dots": int(v)})
			p.pos += 3
		}

	case escDefaultSpacing:
		p.emit(KindDefaultSpacing, start, start+2, nil)
		p.pos += 2

	default:
		p.warnf(start, "unknown ESC command 0x%02X", p.data[p.pos+1])
		p.pos += 2
	}
}

func (p *parser) gsSequence() {
	start := p.pos
	if p.pos+1 >= len(p.data) {
		p.warnf(start, "truncated GS at end of input")
		p.pos++
		return
	}

	switch p.data[p.pos+1] {
	case gsCut:
		if v, ok := p.arg("GS V"); ok {
			// 0/'0' = full cut, 1/'1' = partial; anything else falls back
			// to a full cut.
			mode := "FULL"
			if v == 0x01 || v == 0x31 {
				mode = "PART"
			}
			p.emit(KindCut, start, start+3, map[string]any{"mode": mode})
			p.pos += 3
		}

	case gsCharSize:
		if v, ok := p.arg("GS !"); ok {
			p.emit(KindCharSize, start, start+3, map[string]any{
				"width":  int(v&0x07) + 1,
				"height": int((v>>4)&0x07) + 1,
			})
			p.pos += 3
		}

	case gsRaster:
		p.rasterImage()

	default:
		p.warnf(start, "unknown GS command 0x%02X", p.data[p.pos+1])
		p.pos += 2
	}
}

func (p *parser) textRun() {
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] >= printableLow && p.data[p.pos] <= printableHigh {
		p.pos++
	}
	var sb strings.Builder
	for _, b := range p.data[start:p.pos] {
		// The scanned range is printable ASCII by construction; anything
		// else would be a scanner bug, so replace rather than fail.
		if b >= printableLow && b <= printableHigh {
			sb.WriteByte(b)
		} else {
			sb.WriteRune('�')
		}
	}
	p.emit(KindText, start, p.pos, map[string]any{"text": sb.String()})
}
