// textual IR reader, writer, assembler and disassembler for CLVM programs
//
// the textual form is read into a type-tagged IR tree, which is either
// written back as canonical text or assembled into a canonical S-expression
// (see package sexp). disassembly lifts an S-expression back into IR,
// substituting operator names from a keyword table (see package keyword).
//
// examples:
//
//	(+ 1 2)                 ; list of a keyword and two integers
//	(q . 0xdeadbeef)        ; dotted pair with a hex blob tail
//	(c "hello" 'world' #q)  ; quoted strings and an escaped symbol
//
// BNF:
//
//	<sexpr>        :: "(" <cons> | <literal> ;
//	<cons>         :: ")" | <sexpr> "." <sexpr> ")" | <sexpr> <cons> ;
//	<literal>      :: <integer> | <hex> | <quoted> | <symbol> ;
//
//	<integer>      :: [ "+" | "-" ] <decimal-digit>+ ;
//	<hex>          :: ( "0x" | "0X" ) <hex-digit>* ;
//	<quoted>       :: <delim> <any char except delim>* <delim> ;
//	<delim>        :: "\"" | "'" | "\\" ;
//	<symbol>       :: <any run of chars up to whitespace or ")"> ;
//
//	<comment>      :: ";" <any char except "\r", "\n">* ;
//
// an odd number of hex digits is read as if a leading "0" were present.
// a symbol starting with "#" is escaped: the "#" is dropped and the rest is
// assembled as literal bytes, never as a keyword.

package clvmir

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clvmir'.
func tracer() tracing.Trace {
	return tracing.Select("clvmir")
}
