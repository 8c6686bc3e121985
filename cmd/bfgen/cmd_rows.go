package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gobrainfuck/bfgen/internal/codegen"
	"github.com/gobrainfuck/bfgen/internal/lower"
	"github.com/gobrainfuck/bfgen/internal/parser"
)

// cmdRows dumps the emitter's annotated row buffer, the closest analogue to
// the teacher's IR dump: one line per row, showing the move prefix, the
// indented operators, and the comment that motivated them.
func cmdRows(args []string) {
	fs := flag.NewFlagSet("rows", flag.ExitOnError)
	in := fs.String("i", "", "input source file (alternative to the positional argument)")
	ver := fs.Bool("v", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfgen rows [-i file] [file]")
		fs.PrintDefaults()
		os.Exit(1)
	}
	fs.Parse(args)
	if *ver {
		printVersionAndExit()
	}

	src := readSource(resolveSourceFile(fs, *in))

	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	gen := codegen.New()
	l, err := lower.New(gen, prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	retVar, err := l.LowerProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gen.Release(retVar)

	fmt.Print(gen.Emitter().RenderAnnotated())
}
