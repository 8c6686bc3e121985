package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/gobrainfuck/bfgen/internal/driver"
)

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	in := fs.String("i", "", "input source file (alternative to the positional argument)")
	out := fs.String("o", "a.bf", "output file")
	debug := fs.Bool("d", false, "annotated debug output instead of minimal Brainfuck text")
	squaring := fs.Uint64("squaring-threshold", 0, "constant magnitude above which Set/Add/Subtract switch to the squaring idiom (0 = generator default)")
	ver := fs.Bool("v", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfgen build [-d] [-i file] [-o file] [-squaring-threshold n] [file]")
		fs.PrintDefaults()
		os.Exit(1)
	}
	fs.Parse(args)
	if *ver {
		printVersionAndExit()
	}

	file := resolveSourceFile(fs, *in)
	src := readSource(file)

	glog.V(1).Infof("compiling %s (debug=%v)", file, *debug)

	opts := []driver.Option{driver.WithDebugOutput(*debug)}
	if *squaring > 0 {
		opts = append(opts, driver.WithSquaringThreshold(*squaring))
	}

	text, err := driver.Compile(src, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
