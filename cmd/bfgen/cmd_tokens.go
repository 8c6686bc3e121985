package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gobrainfuck/bfgen/internal/lexer"
)

func cmdTokens(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	in := fs.String("i", "", "input source file (alternative to the positional argument)")
	ver := fs.Bool("v", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfgen tokens [-i file] [file]")
		fs.PrintDefaults()
		os.Exit(1)
	}
	fs.Parse(args)
	if *ver {
		printVersionAndExit()
	}

	src := readSource(resolveSourceFile(fs, *in))
	toks, err := lexer.TokenizeAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, tok := range toks {
		fmt.Printf("%d:%d\t%v\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Text)
	}
}
