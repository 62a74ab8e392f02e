// Package lua exposes the IR reader, writer, assembler and disassembler to
// gopher-lua scripts as a loadable module.
//
//	local clvm = require("clvmir")
//	local prog, perr = clvm.assemble("(+ 1 2)")   -- "ff10ff01ff0280"
//	local text = clvm.disassemble(prog)            -- "(+ q a)"
//
// Failing calls return nil and an error table {err = "...", offset = n}.
package lua

import (
	"errors"

	"github.com/yuin/gopher-lua"

	"github.com/alttpo/clvmir"
	"github.com/alttpo/clvmir/sexp"
)

const ModuleName = "clvmir"

// Preload makes the module available to require() in l.
func Preload(l *lua.LState, kw clvmir.Keywords) {
	l.PreloadModule(ModuleName, Loader(kw))
}

// Loader builds the module table.
func Loader(kw clvmir.Keywords) lua.LGFunction {
	m := &module{kw: kw}
	return func(l *lua.LState) int {
		mod := l.SetFuncs(l.NewTable(), map[string]lua.LGFunction{
			"assemble":      m.assemble,
			"disassemble":   m.disassemble,
			"format":        m.format,
			"read_ir":       m.readIR,
			"type_for_atom": m.typeForAtom,
		})
		l.Push(mod)
		return 1
	}
}

type module struct {
	kw clvmir.Keywords
}

func (m *module) assemble(l *lua.LState) int {
	h, err := clvmir.AssembleHex(l.CheckString(1), m.kw)
	if err != nil {
		return pushError(l, err)
	}
	l.Push(lua.LString(h))
	return 1
}

func (m *module) disassemble(l *lua.LState) int {
	text, err := clvmir.DisassembleHex(l.CheckString(1), m.kw)
	if err != nil {
		return pushError(l, err)
	}
	l.Push(lua.LString(text))
	return 1
}

func (m *module) format(l *lua.LState) int {
	n, err := clvmir.ReadIR(l.CheckString(1))
	if err != nil {
		return pushError(l, err)
	}
	text, err := clvmir.WriteIR(n)
	if err != nil {
		return pushError(l, err)
	}
	l.Push(lua.LString(text))
	return 1
}

func (m *module) readIR(l *lua.LState) int {
	n, err := clvmir.ReadIR(l.CheckString(1))
	if err != nil {
		return pushError(l, err)
	}
	l.Push(toTable(l, n))
	return 1
}

// typeForAtom takes the raw atom bytes as a Lua string.
func (m *module) typeForAtom(l *lua.LState) int {
	atom := []byte(l.CheckString(1))
	l.Push(lua.LString(clvmir.TypeForAtom(atom).String()))
	return 1
}

// toTable converts an IR tree into nested tables:
//
//	{type = "CONS", offset = 1, first = {...}, rest = {...}}
//	{type = "INT", offset = 3, atom = "\x01"}
func toTable(l *lua.LState, n *clvmir.Node) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("type", lua.LString(n.Type.String()))
	if n.HasOffset {
		t.RawSetString("offset", lua.LNumber(n.Offset))
	}
	if n.IsList() {
		t.RawSetString("first", toTable(l, n.First))
		t.RawSetString("rest", toTable(l, n.Rest))
		return t
	}
	t.RawSetString("atom", lua.LString(n.Atom))
	return t
}

func pushError(l *lua.LState, err error) int {
	e := l.NewTable()
	e.RawSetString("err", lua.LString(err.Error()))

	var le *clvmir.LexError
	var pe *clvmir.ParseError
	switch {
	case errors.As(err, &le):
		e.RawSetString("offset", lua.LNumber(le.Offset))
	case errors.As(err, &pe) && pe.Offset >= 0:
		e.RawSetString("offset", lua.LNumber(pe.Offset))
	case errors.Is(err, sexp.ErrUnexpectedEOF):
		e.RawSetString("truncated", lua.LTrue)
	}

	l.Push(lua.LNil)
	l.Push(e)
	return 2
}
