// Command tcomp drives the T front-end over a list of source files
// passed positionally on the command line, classifying each by its
// extension (.tc code, .td declaration) and printing accumulated
// diagnostics to standard error.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hassan/tcompiler/internal/compile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s FILE...\n", os.Args[0])
		os.Exit(1)
	}

	var files compile.FileList
	for _, path := range os.Args[1:] {
		switch filepath.Ext(path) {
		case ".tc":
			files = append(files, compile.FileEntry{Path: path, IsCode: true})
		case ".td":
			files = append(files, compile.FileEntry{Path: path, IsCode: false})
		default:
			fmt.Fprintf(os.Stderr, "%s: unrecognised file extension (expected .tc or .td)\n", path)
			os.Exit(1)
		}
	}

	p := compile.NewPipeline(compile.Options{})
	status := p.Run(files, nil)

	for _, d := range p.Bag().Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}

	if status != 0 {
		os.Exit(1)
	}
}
