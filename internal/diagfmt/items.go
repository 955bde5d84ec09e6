package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"manifold/internal/grammar"
	"manifold/internal/source"
)

// ItemOutput describes one scanned declaration for debug output.
type ItemOutput struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Include string      `json:"include,omitempty"`
	Span    source.Span `json:"span"`
	Markers []string    `json:"markers,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

func itemOutput(item grammar.Item) ItemOutput {
	out := ItemOutput{
		Kind:    item.Kind.String(),
		Span:    item.Span,
		Include: item.Include,
	}
	switch item.Kind {
	case grammar.ItemStructIndicator:
		out.Name = item.Name
	case grammar.ItemStructDecl:
		if item.Struct != nil {
			out.Name = item.Struct.Name
			out.Detail = fmt.Sprintf("%d fields", len(item.Struct.Fields))
		}
	case grammar.ItemEnumDecl:
		if item.Enum != nil {
			out.Name = item.Enum.Name
			out.Detail = fmt.Sprintf("%d variants", len(item.Enum.Variants))
		}
	case grammar.ItemFunctionDecl:
		if item.Func != nil {
			out.Name = item.Func.Name
			out.Detail = fmt.Sprintf("%d params", len(item.Func.Params))
			for _, m := range item.Func.Markers {
				out.Markers = append(out.Markers, m.String())
			}
		}
	case grammar.ItemOther:
		if item.Raw != "" {
			out.Detail = runewidth.Truncate(item.Raw, 40, "…")
		}
	}
	return out
}

// FormatItemsPretty выводит просканированные объявления в человекочитаемом
// формате, по одному на строку.
func FormatItemsPretty(w io.Writer, items []grammar.Item, fs *source.FileSet) error {
	for i, item := range items {
		out := itemOutput(item)
		startPos, endPos := fs.Resolve(item.Span)

		fmt.Fprintf(w, "%3d: %-10s", i+1, out.Kind)
		if out.Name != "" {
			fmt.Fprintf(w, " %q", out.Name)
		}
		if out.Include != "" {
			fmt.Fprintf(w, " %q", out.Include)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if len(out.Markers) > 0 {
			fmt.Fprintf(w, " [%s]", out.Markers[0])
			for _, m := range out.Markers[1:] {
				fmt.Fprintf(w, " [%s]", m)
			}
		}
		if out.Detail != "" {
			fmt.Fprintf(w, " (%s)", out.Detail)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatItemsJSON выводит просканированные объявления в JSON формате.
func FormatItemsJSON(w io.Writer, items []grammar.Item) error {
	output := make([]ItemOutput, 0, len(items))
	for _, item := range items {
		output = append(output, itemOutput(item))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
