package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texprep [flags] <input.tex> <output.tex>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize LaTeX markup before conversion with Pandoc or Quarto:")
	fmt.Fprintln(w, "  - fix \\begin{chap quote} typos")
	fmt.Fprintln(w, "  - rewrite chapquote environments as quote + flushright")
	fmt.Fprintln(w, "  - rename \\cite{...} to \\citet{...}")
	fmt.Fprintln(w, "  - move \\includegraphics paths to figures/ with a .png extension")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Rules file name or path (YAML)")
	fmt.Fprintln(w, "      --print-rules         Print effective rules as YAML and exit")
	fmt.Fprintln(w, "      --force               Write output even if unchanged")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show stage statistics and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  unexpected error")
	fmt.Fprintln(w, "  2  usage or config error")
	fmt.Fprintln(w, "  3  file read/write error")
	fmt.Fprintln(w, "  4  malformed chapquote environment")
}
