package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gobrainfuck/bfgen/internal/bfvm"
	"github.com/gobrainfuck/bfgen/internal/driver"
)

// cmdRun compiles file and immediately executes the result through the
// reference interpreter, piping stdin/stdout through unchanged unless -i
// redirects input from a file. Useful for trying a program without writing
// the intermediate Brainfuck text to disk.
func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	inputFile := fs.String("i", "", "read interpreter input from this file instead of stdin")
	ver := fs.Bool("v", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfgen run [-i file] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	fs.Parse(args)
	if *ver {
		printVersionAndExit()
	}

	if fs.NArg() != 1 {
		fs.Usage()
	}

	src := readSource(fs.Arg(0))
	text, err := driver.Compile(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var vmOpts []bfvm.Option
	if *inputFile != "" {
		f, ferr := os.Open(*inputFile)
		if ferr != nil {
			fmt.Fprintln(os.Stderr, ferr)
			os.Exit(1)
		}
		defer f.Close()
		vmOpts = append(vmOpts, bfvm.WithInput(f))
	}

	interpreter := bfvm.New(vmOpts...)
	if err := interpreter.Run(text); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
