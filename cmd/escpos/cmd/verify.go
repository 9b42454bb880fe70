package cmd

import (
	"fmt"
	"os"

	"github.com/cobyhausrath/esc-pos-preview-tools/pkg/verify"
	"github.com/spf13/cobra"
)

var (
	verifyCode   string
	verifyStrict bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <input-file>",
	Short: "Verify a call script against ESC/POS bytes",
	Long: `Execute a python-escpos call script against the reference printer and
check that it reproduces the original byte stream. By default a semantic
match passes (backend bookkeeping commands are ignored); --strict requires
a byte-for-byte match.

Examples:
  escpos verify receipt.bin -c receipt.py
  escpos verify receipt.bin -c receipt.py --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyCode, "code", "c", "",
		"call script file to verify")
	verifyCmd.MarkFlagRequired("code")
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false,
		"require a byte-for-byte match (default: semantic)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	script, err := os.ReadFile(verifyCode)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	fmt.Printf("Read %d bytes from %s\n", len(data), args[0])
	fmt.Printf("Read %d characters from %s\n", len(script), verifyCode)

	fmt.Println("\nVerifying...")
	res := verify.Verify(data, string(script), !verifyStrict)
	fmt.Println(res.Message)
	if !res.OK {
		return fmt.Errorf("verification failed")
	}
	return nil
}
