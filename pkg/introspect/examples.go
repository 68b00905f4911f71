package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/liblens/liblens/pkg/pydist"
)

// Examples collects runnable code examples for a library by extracting
// doctest sessions (">>> " blocks) from the docstrings of its module,
// classes, methods, and functions. Libraries without doctests yield an
// empty slice, not an error.
func (in *Introspector) Examples(ctx context.Context, library string) ([]Example, error) {
	idx, err := in.load(ctx, library)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://pypi.org/project/%s/", pydist.Normalize(library))
	examples := make([]Example, 0)

	add := func(title, doc string) {
		for i, code := range doctestBlocks(doc) {
			t := title
			if i > 0 {
				t = fmt.Sprintf("%s (%d)", title, i+1)
			}
			examples = append(examples, Example{
				Title:    t,
				Code:     code,
				Language: "python",
				Source:   "docstring",
				URL:      url,
			})
		}
	}

	add(idx.Module, idx.Docstring)
	for _, c := range idx.Classes {
		add(c.Name, c.Docstring)
		for _, m := range c.Methods {
			add(c.Name+"."+m.Name, m.Docstring)
		}
	}
	for _, f := range idx.Functions {
		add(f.Name, f.Docstring)
	}

	return examples, nil
}

// doctestBlocks extracts doctest sessions from a docstring. A session
// starts at a ">>> " line and runs through continuation lines ("... ")
// and expected output until a blank line or the end of the docstring.
func doctestBlocks(doc string) []string {
	if doc == "" || doc == noDoc {
		return nil
	}

	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	inBlock := false
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, ">>>"):
			inBlock = true
			current = append(current, trimmed)
		case inBlock && trimmed == "":
			inBlock = false
			flush()
		case inBlock:
			// Continuation or expected output, kept verbatim.
			current = append(current, trimmed)
		}
	}
	flush()

	return blocks
}
