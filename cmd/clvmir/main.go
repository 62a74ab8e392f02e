package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alttpo/clvmir"
	"github.com/alttpo/clvmir/keyword"
)

const appName = "clvmir"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "opc":
		return cmdOpc(rest, stdout, stderr)
	case "opd":
		return cmdOpd(rest, stdout, stderr)
	case "fmt":
		return cmdFmt(rest, stdout, stderr)
	case "kw":
		return cmdKw(rest, stdout, stderr)
	case "repl":
		return cmdRepl(rest)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, cmd)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %s opc [-f file] [text ...]     Assemble IR text and print the serialized hex.
  %s opd <hex> ...                Disassemble serialized hex programs.
  %s fmt [-f file] [text ...]     Parse IR text and print it back normalized.
  %s kw [name ...]                Show keyword encodings (all when no name given).
  %s repl                         Assemble lines interactively.

`, appName, appName, appName, appName, appName)
}

// source returns the text named by -f, or the remaining arguments joined by
// spaces.
func source(name string, args []string, stderr io.Writer) (string, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("f", "", "read text from `file`")
	if err := fs.Parse(args); err != nil {
		return "", 2
	}

	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(stderr, "%s: cannot read %s: %v\n", appName, *file, err)
			return "", 1
		}
		return string(b), 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "usage: %s %s [-f file] [text ...]\n", appName, name)
		return "", 2
	}
	return strings.Join(fs.Args(), " "), 0
}

func cmdOpc(args []string, stdout, stderr io.Writer) int {
	text, code := source("opc", args, stderr)
	if code != 0 {
		return code
	}

	h, err := clvmir.AssembleHex(text, keyword.Default)
	if err != nil {
		fmt.Fprintln(stderr, clvmir.WrapErrorWithSource(err, text))
		return 1
	}
	fmt.Fprintln(stdout, h)
	return 0
}

func cmdOpd(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "usage: %s opd <hex> ...\n", appName)
		return 2
	}

	ret := 0
	for _, h := range args {
		text, err := clvmir.DisassembleHex(h, keyword.Default)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %s: %v\n", appName, h, err)
			ret = 1
			continue
		}
		fmt.Fprintln(stdout, text)
	}
	return ret
}

func cmdFmt(args []string, stdout, stderr io.Writer) int {
	text, code := source("fmt", args, stderr)
	if code != 0 {
		return code
	}

	n, err := clvmir.ReadIR(text)
	if err != nil {
		fmt.Fprintln(stderr, clvmir.WrapErrorWithSource(err, text))
		return 1
	}
	if err := clvmir.WriteIRTo(stdout, n); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	fmt.Fprintln(stdout)
	return 0
}

func cmdKw(args []string, stdout, stderr io.Writer) int {
	kw := keyword.Default
	if len(args) == 0 {
		args = kw.Names()
	}

	ret := 0
	for _, name := range args {
		atom, ok := kw.Atom(name)
		if !ok || name == keyword.Separator {
			fmt.Fprintf(stderr, "%s: unknown keyword %q", appName, name)
			if s := kw.Suggest(name); len(s) > 0 {
				fmt.Fprintf(stderr, ", did you mean %s?", strings.Join(s, " or "))
			}
			fmt.Fprintln(stderr)
			ret = 1
			continue
		}
		fmt.Fprintf(stdout, "%-16s 0x%s\n", name, hex.EncodeToString(atom))
	}
	return ret
}
