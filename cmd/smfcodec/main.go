// Command smfcodec parses, encodes, validates, and builds Standard MIDI Files.
package main

import (
	"fmt"
	"os"

	"github.com/zurustar/smfcodec/pkg/app"
)

func main() {
	a := app.New()
	if err := a.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
