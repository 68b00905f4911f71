package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/liblens/liblens/pkg/introspect"
)

// Options configures structure diagram rendering.
type Options struct {
	// ShowMethods adds one node per class method. When false, classes
	// are annotated with their method count instead.
	ShowMethods bool
	// MaxConstants limits how many constants appear; zero hides them.
	MaxConstants int
}

// ToDOT converts a library's structure to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(info *introspect.LibraryInfo, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := info.Metadata.Name
	label := root
	if info.Metadata.Version != "" {
		label = fmt.Sprintf("%s\n%s", root, info.Metadata.Version)
	}
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", root, label)

	for _, class := range info.Classes {
		id := "class:" + class.Name
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, classLabel(class, opts.ShowMethods))
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
		if !opts.ShowMethods {
			continue
		}
		for _, m := range class.Methods {
			mid := fmt.Sprintf("method:%s.%s", class.Name, m.Name)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fontsize=11];\n", mid, m.Name+"()")
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, mid)
		}
	}

	for _, fn := range info.Functions {
		id := "func:" + fn.Name
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", id, fn.Name+"()")
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
	}

	if opts.MaxConstants > 0 && len(info.Constants) > 0 {
		shown := info.Constants
		if len(shown) > opts.MaxConstants {
			shown = shown[:opts.MaxConstants]
		}
		var lines []string
		for _, c := range shown {
			lines = append(lines, fmt.Sprintf("%s: %s", c.Name, c.Type))
		}
		if rest := len(info.Constants) - len(shown); rest > 0 {
			lines = append(lines, fmt.Sprintf("… %d more", rest))
		}
		fmt.Fprintf(&buf, "  \"constants\" [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
			"constants\n"+strings.Join(lines, "\n"))
		fmt.Fprintf(&buf, "  %q -> \"constants\";\n", root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func classLabel(class introspect.ClassInfo, showMethods bool) string {
	if showMethods || len(class.Methods) == 0 {
		return class.Name
	}
	return fmt.Sprintf("%s\n%d methods", class.Name, len(class.Methods))
}
