package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/polkadot/internal/cli"
	"github.com/arthur-debert/polkadot/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			errorStyle := styles.Default.Get("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
