// Command slimpdf is the headless counterpart of the desktop app: it
// runs the same compression pipeline from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "slimpdf",
		Short: "Compress PDFs into per-page images or an AI-summarized PDF",
	}

	root.AddCommand(convertCmd())
	root.AddCommand(statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
