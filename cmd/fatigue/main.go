// Command fatigue runs life predictions from the command line against a
// material file, printing tables for quick checks.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
