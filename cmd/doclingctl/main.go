// Command doclingctl is a thin CLI wrapper around the tabula library:
// it detects a source file's format, dispatches to the matching
// backend, and writes the extracted document to stdout as Markdown or
// JSON. It mirrors the shape of the library's own fluent API
// (tabula.Open/tabula.Must) but as a single-shot command rather than a
// chained builder — the CLI itself carries no document-understanding
// logic of its own.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("doclingctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outputFormat := fs.String("format", "markdown", `output format: "markdown" or "json"`)
	enableOCR := fs.Bool("ocr", false, "run OCR over image-only pages/backends (TIFF) that support it")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: doclingctl [-format markdown|json] [-ocr] <file>")
		return 2
	}

	readDebugEnv()

	out, err := Convert(fs.Arg(0), ConvertOptions{
		Format: *outputFormat,
		OCR:    *enableOCR,
	})
	if err != nil {
		fmt.Fprintf(stderr, "doclingctl: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, out)
	return 0
}
