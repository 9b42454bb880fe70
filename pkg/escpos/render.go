package escpos

import (
	"fmt"
	"strings"
)

// renderCall produces the python-escpos call for a decoded command. Image
// commands are left to the code generator, which must bind the bitmap to a
// variable before the call (see package codegen). Backend-internal commands
// render as comments: re-emitting them would double up with the bookkeeping
// the backend injects on its own.
func renderCall(c *Command) string {
	switch c.Kind {
	case KindInitialize:
		return "p.hw('init')"
	case KindBold:
		if c.Params["enabled"].(bool) {
			return "p.set(bold=True)"
		}
		return "p.set(bold=False)"
	case KindUnderline:
		return fmt.Sprintf("p.set(underline=%d)", c.Params["mode"].(int))
	case KindAlign:
		return fmt.Sprintf("p.set(align='%s')", c.Params["align"].(string))
	case KindPrintMode:
		var parts []string
		if c.Params["bold"].(bool) {
			parts = append(parts, "bold=True")
		}
		switch c.Params["size"].(string) {
		case "2x":
			parts = append(parts, "width=2", "height=2")
		case "2w":
			parts = append(parts, "width=2", "height=1")
		case "2h":
			parts = append(parts, "width=1", "height=2")
		}
		return fmt.Sprintf("p.set(%s)", strings.Join(parts, ", "))
	case KindCharSize:
		return fmt.Sprintf("p.set(width=%d, height=%d)",
			c.Params["width"].(int), c.Params["height"].(int))
	case KindCut:
		return fmt.Sprintf("p.cut(mode='%s')", c.Params["mode"].(string))
	case KindText:
		return fmt.Sprintf("p.text('%s')", escapeText(c.Params["text"].(string)))
	case KindLineFeed:
		return `p.text('\n')`
	case KindCodePage:
		return fmt.Sprintf("# codepage table %d (backend-managed)", c.Params["table"].(int))
	case KindFeed:
		return fmt.Sprintf("# feed %d lines (backend-managed)", c.Params["lines"].(int))
	case KindLineSpacing:
		return fmt.Sprintf("# line spacing %d dots (backend-managed)", c.Params["dots"].(int))
	case KindDefaultSpacing:
		return "# default line spacing (backend-managed)"
	}
	return ""
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
