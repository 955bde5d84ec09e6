package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"manifold/internal/diag"
	"manifold/internal/source"
)

type palette struct {
	err  func(a ...interface{}) string
	warn func(a ...interface{}) string
	info func(a ...interface{}) string
	code func(a ...interface{}) string
	mark func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.Sprint
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgCyan),
		code: mk(color.Faint),
		mark: mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	}
	return p.info(sev.String())
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> [<CODE>]: <Message>
// затем строку-контекст с подчёркиванием ^~~~ по Span, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	// Диагностики без позиции (ошибки ввода-вывода, замеры) не привязаны к исходнику.
	if d.Primary.Positionless() {
		fmt.Fprintf(w, "%s %s: %s\n",
			pal.severity(d.Severity),
			pal.code("["+d.Code.ID()+"]"),
			d.Message,
		)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeNote(w, note, fs, opts)
			}
		}
		return
	}

	f := fs.Get(d.Primary.File)
	startPos, endPos := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode),
		startPos.Line, startPos.Col,
		pal.severity(d.Severity),
		pal.code("["+d.Code.ID()+"]"),
		d.Message,
	)

	writeContext(w, f, startPos, endPos, opts, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			writeNote(w, note, fs, opts)
		}
	}
}

func writeNote(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	if note.Span.Positionless() {
		fmt.Fprintf(w, "  note: %s\n", note.Msg)
		return
	}
	nf := fs.Get(note.Span.File)
	notePos, _ := fs.Resolve(note.Span)
	fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
		formatPath(nf, fs, opts.PathMode),
		notePos.Line, notePos.Col,
		note.Msg,
	)
}

// writeContext печатает строки вокруг основного span и подчёркивание под ним.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	first := start.Line
	last := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}

	for lineNum := first; lineNum <= last; lineNum++ {
		line := f.GetLine(lineNum)
		if line == "" && lineNum != start.Line {
			continue
		}
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%5d | %s\n", lineNum, line)

		if lineNum == start.Line && start.Col > 0 {
			width := 1
			if end.Line == start.Line && end.Col > start.Col {
				width = int(end.Col - start.Col)
			}
			marks := "^"
			if width > 1 {
				marks += strings.Repeat("~", width-1)
			}
			pad := strings.Repeat(" ", int(start.Col-1))
			fmt.Fprintf(w, "      | %s%s\n", pad, pal.mark(marks))
		}
	}
}
