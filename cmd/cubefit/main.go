// Command cubefit generates a synthetic spectral cube and fits it.
//
// Usage:
//
//	cubefit [command] [flags]
//
// Commands:
//
//	noise     per-channel noise estimate
//	spectrum  line + continuum fit to the summed or a single-pixel spectrum
//	channels  per-channel brightness fits
//
// Every flag can also be set through a CUBEFIT_<FLAG> environment variable
// (dashes become underscores) or a config file passed with --config.
//
// Examples:
//
//	cubefit noise --channels 64 --noise-lo 0.1 --noise-hi 0.4
//	cubefit spectrum --pixel 16,16 --method nelder-mead
//	cubefit channels --workers 4 --plot flux.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
