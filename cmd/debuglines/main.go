// Command debuglines benchmarks the debug line buffers and renders preview
// images of them.
package main

import (
	"os"

	"github.com/gogpu/debuglines/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
