package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/spf13/cobra"
)

var showBytes bool

var parseCmd = &cobra.Command{
	Use:   "parse <input-file>",
	Short: "Parse and display ESC/POS commands",
	Long: `Parse a raw ESC/POS byte stream and display the decoded command list,
one line per command, together with the printer-API call each command maps to.

Examples:
  escpos parse receipt.bin
  escpos parse receipt.bin --show-bytes
  escpos parse -v samples/formatting.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&showBytes, "show-bytes", false,
		"show raw bytes for each command")
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Printf("Read %d bytes from %s\n\n", len(data), args[0])

	commands, warnings, err := escpos.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	fmt.Printf("Parsed %d commands:\n\n", len(commands))
	for i, c := range commands {
		fmt.Printf("%3d. %-15s -> %s\n", i+1, c.Kind, describeCall(&c))
		if showBytes {
			fmt.Printf("     Bytes: %s\n", hexSpan(data, c.Span))
		}
	}

	if len(warnings) > 0 {
		fmt.Printf("\n\nWarnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return nil
}

// describeCall returns the command's rendered call, or a summary for image
// commands whose call is produced by the code generator.
func describeCall(c *escpos.Command) string {
	if c.Call != "" {
		return c.Call
	}
	if c.Bitmap != nil {
		impl := "bitImageColumn"
		if c.Kind == escpos.KindRaster {
			impl = "bitImageRaster"
		}
		return fmt.Sprintf("p.image(<%dx%d>, impl='%s')", c.Bitmap.W, c.Bitmap.H, impl)
	}
	return ""
}

// hexSpan formats the command's bytes as hex. Long payloads are truncated
// unless verbose output is enabled.
func hexSpan(data []byte, s escpos.Span) string {
	const limit = 32

	b := data[s.Start:s.End]
	n := len(b)
	if !verbose && n > limit {
		n = limit
	}

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%02X", b[i])
	}
	out := strings.Join(parts, " ")
	if n < len(b) {
		out += fmt.Sprintf(" ... (%d more bytes, use -v to show all)", len(b)-n)
	}
	return out
}
