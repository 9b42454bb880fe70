package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/printer"
	"github.com/spf13/cobra"
)

var samplesDir string

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Generate sample ESC/POS byte streams",
	Long: `Generate a set of sample ESC/POS streams through the reference
printer: a comprehensive receipt, a minimal stream, and a text formatting
exercise. Useful as inputs for parse, convert, and verify.

Examples:
  escpos samples
  escpos samples -d testdata`,
	Args: cobra.NoArgs,
	RunE: runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)

	samplesCmd.Flags().StringVarP(&samplesDir, "dir", "d", "samples",
		"directory to write sample files into")
}

func runSamples(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(samplesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", samplesDir, err)
	}

	fmt.Println("Generating ESC/POS sample files...")

	samples := []struct {
		name     string
		generate func() []byte
		desc     string
	}{
		{"receipt.bin", sampleReceipt, "Comprehensive receipt sample"},
		{"minimal.bin", sampleMinimal, "Minimal test case"},
		{"formatting.bin", sampleFormatting, "Text formatting test"},
	}

	for _, s := range samples {
		path := filepath.Join(samplesDir, s.name)
		fmt.Printf("  - %s: %s\n", s.name, s.desc)

		data := s.generate()
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("    Size: %d bytes\n", len(data))
		n := len(data)
		if n > 64 {
			n = 64
		}
		fmt.Printf("    First %d bytes (hex): %x\n", n, data[:n])
	}

	fmt.Printf("\nSample files generated in '%s'\n", samplesDir)
	return nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// sampleReceipt exercises alignment, emphasis, underline, size changes, and
// a final cut around receipt-shaped text.
func sampleReceipt() []byte {
	p := printer.NewDummy()
	p.Init()

	p.Set(printer.SetOptions{Align: "center", Bold: boolPtr(true)})
	p.Text("THERMAL PRINTER TEST\n")
	p.Text("Netum 80-V-UL\n")
	p.Set(printer.SetOptions{Align: "center", Bold: boolPtr(false)})
	p.Text(strings.Repeat("=", 48) + "\n")

	p.Set(printer.SetOptions{Align: "left"})
	p.Text("\n")
	p.Text("Order #12345\n")
	p.Text("Date: 2025-11-09 14:30:00\n")
	p.Text("\n")

	p.Set(printer.SetOptions{Align: "center", Width: 2, Height: 2})
	p.Text("DOUBLE SIZE\n")
	p.Set(printer.SetOptions{Align: "center", Width: 1, Height: 2})
	p.Text("TALL TEXT\n")
	p.Set(printer.SetOptions{Align: "center", Width: 2, Height: 1})
	p.Text("WIDE TEXT\n")

	p.Set(printer.SetOptions{Align: "left", Width: 1, Height: 1})
	p.Text("\n")

	p.Set(printer.SetOptions{Align: "left", Bold: boolPtr(true)})
	p.Text("BOLD TEXT TEST\n")
	p.Set(printer.SetOptions{Bold: boolPtr(false)})

	p.Set(printer.SetOptions{Underline: intPtr(1)})
	p.Text("Underlined text example\n")
	p.Set(printer.SetOptions{Underline: intPtr(0)})

	p.Text("\n")
	p.Text("ITEMS:\n")
	p.Text(strings.Repeat("-", 48) + "\n")
	p.Text("Item 1                          $10.00\n")
	p.Text("Item 2 with a long name         $25.50\n")
	p.Text("Item 3                           $5.99\n")
	p.Text(strings.Repeat("-", 48) + "\n")

	p.Set(printer.SetOptions{Align: "right", Bold: boolPtr(true)})
	p.Text("TOTAL: $41.49\n")
	p.Set(printer.SetOptions{Align: "left", Bold: boolPtr(false)})

	p.Text("\n")
	p.Text("Special chars: @#$%^&*()\n")
	p.Text("Numbers: 0123456789\n")
	p.Text("\n")

	p.Set(printer.SetOptions{Align: "center"})
	p.Text("Thank you for your purchase!\n")
	p.Text("www.example.com\n")
	p.Text("\n")

	p.Cut("FULL")
	return p.Output()
}

func sampleMinimal() []byte {
	p := printer.NewDummy()
	p.Init()
	p.Text("Hello, World!\n")
	p.Text("This is a test.\n")
	p.Cut("FULL")
	return p.Output()
}

// sampleFormatting walks through every alignment, the bold/underline
// combinations, and the four size combinations.
func sampleFormatting() []byte {
	p := printer.NewDummy()
	p.Init()

	p.Set(printer.SetOptions{Align: "left"})
	p.Text("LEFT ALIGNED\n")
	p.Set(printer.SetOptions{Align: "center"})
	p.Text("CENTER ALIGNED\n")
	p.Set(printer.SetOptions{Align: "right"})
	p.Text("RIGHT ALIGNED\n")
	p.Set(printer.SetOptions{Align: "left"})
	p.Text("\n")

	p.Set(printer.SetOptions{Bold: boolPtr(true)})
	p.Text("Bold text\n")
	p.Set(printer.SetOptions{Bold: boolPtr(true), Underline: intPtr(1)})
	p.Text("Bold + Underline\n")
	p.Set(printer.SetOptions{Bold: boolPtr(false), Underline: intPtr(1)})
	p.Text("Normal + Underline\n")
	p.Set(printer.SetOptions{Bold: boolPtr(false), Underline: intPtr(0)})
	p.Text("Normal text\n")
	p.Text("\n")

	p.Set(printer.SetOptions{Width: 1, Height: 1})
	p.Text("Normal size\n")
	p.Set(printer.SetOptions{Width: 2, Height: 1})
	p.Text("Wide\n")
	p.Set(printer.SetOptions{Width: 1, Height: 2})
	p.Text("Tall\n")
	p.Set(printer.SetOptions{Width: 2, Height: 2})
	p.Text("Double\n")

	p.Cut("FULL")
	return p.Output()
}
