package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/alttpo/clvmir"
	"github.com/alttpo/clvmir/keyword"
	"github.com/alttpo/clvmir/sexp"
)

const (
	historyFile = ".clvmir_history"
	promptMain  = "clvm> "
	promptCont  = "...   "
)

const banner = `clvmir REPL
Each expression is assembled, then disassembled back.
Ctrl+C cancels input, Ctrl+D exits.
  :opd <hex>   disassemble a serialized program
  :quit        exit`

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readExpression(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if !evalLine(src, os.Stdout, os.Stderr) {
			return 0
		}
	}
}

// readExpression keeps prompting while the text read so far is an unclosed
// list.
func readExpression(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := clvmir.ReadIR(src); errors.Is(err, clvmir.ErrMissingClosingParen) {
			continue
		}
		return src, true
	}
}

// evalLine handles one REPL entry. It returns false when the session should
// end.
func evalLine(src string, stdout, stderr io.Writer) bool {
	src = strings.TrimSpace(src)

	if strings.HasPrefix(src, ":") {
		cmd, arg, _ := strings.Cut(src, " ")
		switch strings.ToLower(cmd) {
		case ":quit":
			return false
		case ":opd":
			text, err := clvmir.DisassembleHex(arg, keyword.Default)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return true
			}
			fmt.Fprintln(stdout, text)
		default:
			fmt.Fprintln(stderr, "unknown command. Type :quit to exit.")
		}
		return true
	}

	s, err := clvmir.Assemble(src, keyword.Default)
	if err != nil {
		fmt.Fprintln(stderr, clvmir.WrapErrorWithSource(err, src))
		return true
	}
	h, err := sexp.SerializeHex(s)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return true
	}
	text, err := clvmir.Disassemble(s, keyword.Default)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return true
	}
	fmt.Fprintf(stdout, "%s\n%s\n", h, text)
	return true
}
