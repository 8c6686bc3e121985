// Command bfgen compiles the small imperative surface language this
// repository defines down to Brainfuck text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// version is printed by every subcommand's -v flag.
const version = "bfgen version 0.1.0"

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bfgen <command> [options] [-i file | file]

commands:
  build [-d] [-i file] [-o file] <file>   Compile to Brainfuck (default command)
  tokens [-i file] <file>                 Dump tokenizer output
  rows [-i file] <file>                   Dump annotated emitter rows
  run [-i file] <file>                    Compile and execute through the reference interpreter

Every subcommand also accepts -h for help and -v for version.`)
	os.Exit(1)
}

func readSource(file string) []byte {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return src
}

// resolveSourceFile decides which file a subcommand should read: -i PATH if
// given, otherwise the sole positional argument. fs.Usage is invoked (which
// exits) if neither or both are present.
func resolveSourceFile(fs *flag.FlagSet, inputFlag string) string {
	if inputFlag != "" {
		if fs.NArg() != 0 {
			fs.Usage()
		}
		return inputFlag
	}
	if fs.NArg() != 1 {
		fs.Usage()
	}
	return fs.Arg(0)
}

// printVersionAndExit is called by every subcommand when -v is set.
func printVersionAndExit() {
	fmt.Println(version)
	os.Exit(0)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	args := flag.Args()
	if len(args) < 1 {
		usage()
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "build":
		cmdBuild(rest)
	case "tokens":
		cmdTokens(rest)
	case "rows":
		cmdRows(rest)
	case "run":
		cmdRun(rest)
	default:
		// No recognized subcommand: treat the whole argument list as
		// "build" arguments, so "bfgen prog.bfg" compiles with the default
		// options. Flags before the file are parsed by the global flag set
		// above, which does not define build's flags, so "bfgen -o out.bf
		// prog.bfg" is rejected; build's flags need the "build" subcommand.
		cmdBuild(args)
	}
}
