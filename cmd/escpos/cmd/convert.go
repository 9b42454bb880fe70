package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/codegen"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/escpos"
	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/verify"
	"github.com/spf13/cobra"
)

var (
	convertOutput string
	convertVerify bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-file>",
	Short: "Convert ESC/POS bytes to a python-escpos call script",
	Long: `Decode a raw ESC/POS byte stream and generate the equivalent
python-escpos call script. Without -o the script is printed to stdout.

Examples:
  escpos convert receipt.bin -o receipt.py
  escpos convert receipt.bin -o receipt.py --verify
  escpos convert receipt.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "",
		"output script file (default: print to stdout)")
	convertCmd.Flags().BoolVar(&convertVerify, "verify", false,
		"verify the generated script after conversion")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Printf("Read %d bytes from %s\n", len(data), args[0])

	commands, warnings, err := escpos.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	if len(warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	script := codegen.Generate(commands)

	if convertOutput != "" {
		if err := os.WriteFile(convertOutput, []byte(script), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("\nWrote call script to %s\n", convertOutput)
	} else {
		fmt.Println("\nGenerated call script:")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Print(script)
		fmt.Println(strings.Repeat("-", 60))
	}

	if convertVerify {
		fmt.Println("\nVerifying conversion...")
		res := verify.Verify(data, script, true)
		fmt.Println(res.Message)
		if !res.OK {
			return fmt.Errorf("verification failed")
		}
	}
	return nil
}
