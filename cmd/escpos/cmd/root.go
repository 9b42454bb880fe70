package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "escpos",
	Short: "ESC/POS byte-stream decoder, converter, and verifier",
	Long: `A tool for working with raw ESC/POS printer byte streams: decoding
them into commands, converting them to python-escpos call scripts, and
verifying that a script reproduces the original bytes.

Examples:
  escpos parse receipt.bin --show-bytes    # Decode and display commands
  escpos convert receipt.bin -o receipt.py # Convert to a call script
  escpos verify receipt.bin -c receipt.py  # Verify a script against bytes
  escpos samples -d samples                # Generate sample streams`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
