// Command blockedit-demo runs the block editor over a YAML fixture document.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(runDemo).Execute(); err != nil {
		os.Exit(1)
	}
}
