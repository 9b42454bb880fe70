package main

import "github.com/cobyhausrath/esc-pos-preview-tools/cmd/escpos/cmd"

func main() {
	cmd.Execute()
}
