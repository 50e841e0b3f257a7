// Package codewriter is a small structured writer for TypeScript and
// JavaScript source: ordered writes, indentation scopes and brace blocks.
//
// Blocks are opened with a function that writes the body, so indentation can
// never get out of step with the braces:
//
//	w := codewriter.New()
//	w.Write("if (!response.ok)").Block(func() {
//		w.WriteLine("throw new Error(await response.text())")
//	})
//	// if (!response.ok) {
//	//   throw new Error(await response.text())
//	// }
package codewriter

import "strings"

const (
	indentWidth = 2
	quote       = "'"
)

// Writer accumulates source text. The zero value is not usable; call New.
type Writer struct {
	buf         strings.Builder
	indentLevel int

	// newLineOnNextWrite is set after a Block closes so the next write
	// starts on its own line unless Then is used.
	newLineOnNextWrite bool
}

// New returns a Writer using two-space indentation and single quotes.
func New() *Writer {
	return &Writer{}
}

// Write appends text. Every line it starts is indented to the current level;
// empty lines are left unindented.
func (w *Writer) Write(text string) *Writer {
	w.flushPendingNewLine()
	w.write(text)
	return w
}

// WriteLine writes text on a line of its own.
func (w *Writer) WriteLine(text string) *Writer {
	w.flushPendingNewLine()
	w.newLineIfLastNot()
	w.write(text)
	w.buf.WriteByte('\n')
	return w
}

// ConditionalWriteLine writes text on its own line only when cond holds.
func (w *Writer) ConditionalWriteLine(cond bool, text string) *Writer {
	if cond {
		w.WriteLine(text)
	}
	return w
}

// NewLine ends the current line.
func (w *Writer) NewLine() *Writer {
	w.newLineOnNextWrite = false
	w.buf.WriteByte('\n')
	return w
}

// NewLineIfLastNot ends the current line unless the output already ends with one.
func (w *Writer) NewLineIfLastNot() *Writer {
	w.newLineOnNextWrite = false
	w.newLineIfLastNot()
	return w
}

// BlankLine ends the current line and adds one empty line.
func (w *Writer) BlankLine() *Writer {
	w.newLineOnNextWrite = false
	if w.buf.Len() == 0 {
		return w
	}
	w.newLineIfLastNot()
	w.buf.WriteByte('\n')
	return w
}

// BlankLineIfLastNot adds an empty line unless the output already ends with one.
// It is a no-op on an empty writer.
func (w *Writer) BlankLineIfLastNot() *Writer {
	if w.buf.Len() == 0 || strings.HasSuffix(w.buf.String(), "\n\n") {
		w.newLineOnNextWrite = false
		return w
	}
	return w.BlankLine()
}

// Quote writes text as a single-quoted string literal.
func (w *Writer) Quote(text string) *Writer {
	w.flushPendingNewLine()
	w.write(quote + quoteEscaper.Replace(text) + quote)
	return w
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, quote, `\`+quote, "\n", `\n`, "\r", `\r`)

// Block writes " {", the indented body produced by fn and a closing "}".
// The next write starts on a new line; use Then to stay on the brace line.
func (w *Writer) Block(fn func()) *Writer {
	w.flushPendingNewLine()
	if s := w.buf.String(); s != "" && !strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, " ") {
		w.buf.WriteByte(' ')
	}
	w.InlineBlock(fn)
	w.newLineOnNextWrite = true
	return w
}

// InlineBlock writes "{", the indented body produced by fn and "}" and leaves
// the cursor right after the closing brace, e.g. for object literals passed
// as arguments.
func (w *Writer) InlineBlock(fn func()) *Writer {
	w.flushPendingNewLine()
	w.write("{")
	w.buf.WriteByte('\n')
	w.indentLevel++
	if fn != nil {
		fn()
	}
	w.newLineOnNextWrite = false
	w.newLineIfLastNot()
	w.indentLevel--
	w.write("}")
	return w
}

// Then continues on the line of a just-closed block: `} catch (err) {`.
func (w *Writer) Then(text string) *Writer {
	w.newLineOnNextWrite = false
	w.write(text)
	return w
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

func (w *Writer) flushPendingNewLine() {
	if w.newLineOnNextWrite {
		w.newLineOnNextWrite = false
		w.newLineIfLastNot()
	}
}

func (w *Writer) newLineIfLastNot() {
	if w.buf.Len() > 0 && !w.lastIsNewLine() {
		w.buf.WriteByte('\n')
	}
}

func (w *Writer) lastIsNewLine() bool {
	return strings.HasSuffix(w.buf.String(), "\n")
}

func (w *Writer) atLineStart() bool {
	return w.buf.Len() == 0 || w.lastIsNewLine()
}

func (w *Writer) write(text string) {
	indent := strings.Repeat(" ", w.indentLevel*indentWidth)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' && w.atLineStart() {
			w.buf.WriteString(indent)
		}
		w.buf.WriteByte(c)
	}
}
