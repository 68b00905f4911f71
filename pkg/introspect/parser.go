package introspect

import (
	"context"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/pydist"
)

// valueLimit caps the rendered value of a constant, matching the
// truncation the API has always applied.
const valueLimit = 1000

// noDoc is the placeholder docstring for undocumented elements.
const noDoc = "No documentation available"

// moduleIndex is the parsed form of one library's top-level module.
// It is the unit stored in the parse cache, so everything here is
// JSON-serializable, including the exact source text of each element.
type moduleIndex struct {
	Module    string            `json:"module"`
	File      string            `json:"file"`
	Kind      pydist.ModuleKind `json:"kind"`
	Docstring string            `json:"docstring"`
	Classes   []classEntry      `json:"classes"`
	Functions []funcEntry       `json:"functions"`
	Constants []ConstantInfo    `json:"constants"`
}

type classEntry struct {
	Name      string      `json:"name"`
	Docstring string      `json:"docstring"`
	Methods   []funcEntry `json:"methods"`
	Source    string      `json:"source"`
}

type funcEntry struct {
	Name      string `json:"name"`
	Docstring string `json:"docstring"`
	Source    string `json:"source"`
}

// parseModule reads and parses a located module file into a moduleIndex.
// Binary modules produce an index with no members; callers turn source
// requests against them into SOURCE_UNAVAILABLE results.
func parseModule(ctx context.Context, mod *pydist.Module) (*moduleIndex, error) {
	idx := &moduleIndex{Module: mod.Name, File: mod.File, Kind: mod.Kind}
	if mod.Kind == pydist.ModuleBinary {
		return idx, nil
	}

	source, err := os.ReadFile(mod.File)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read module file %s", mod.File)
	}

	// Tree-sitter parsers are not safe for concurrent use, so each parse
	// gets its own instance. Parsing is cheap next to the surrounding I/O.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse module file %s", mod.File)
	}
	defer tree.Close()

	root := tree.RootNode()
	idx.Docstring = blockDocstring(root, source)
	classifyTopLevel(root, source, idx)
	return idx, nil
}

// classifyTopLevel assigns every public top-level definition to exactly
// one descriptor list. Underscore-prefixed names and imports are skipped;
// a name defined twice keeps its first position with the later definition
// winning (last-seen wins).
func classifyTopLevel(root *sitter.Node, source []byte, idx *moduleIndex) {
	classPos := make(map[string]int)
	funcPos := make(map[string]int)
	constPos := make(map[string]int)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		switch child.Type() {
		case "class_definition":
			addClass(idx, classPos, parseClass(child, child, source))

		case "function_definition":
			addFunc(idx, funcPos, parseFunc(child, child, source))

		case "decorated_definition":
			// The source span of a decorated definition includes its
			// decorators, same as the text a reader sees in the file.
			for j := 0; j < int(child.NamedChildCount()); j++ {
				inner := child.NamedChild(j)
				switch inner.Type() {
				case "class_definition":
					addClass(idx, classPos, parseClass(inner, child, source))
				case "function_definition":
					addFunc(idx, funcPos, parseFunc(inner, child, source))
				}
			}

		case "expression_statement":
			// A bare docstring expression has no assignment and falls
			// through parseConstants untouched.
			for _, c := range parseConstants(child, source) {
				addConst(idx, constPos, c)
			}
		}
	}
}

func addClass(idx *moduleIndex, pos map[string]int, entry *classEntry) {
	if entry == nil || strings.HasPrefix(entry.Name, "_") {
		return
	}
	if i, ok := pos[entry.Name]; ok {
		idx.Classes[i] = *entry
		return
	}
	pos[entry.Name] = len(idx.Classes)
	idx.Classes = append(idx.Classes, *entry)
}

func addFunc(idx *moduleIndex, pos map[string]int, entry *funcEntry) {
	if entry == nil || strings.HasPrefix(entry.Name, "_") {
		return
	}
	if i, ok := pos[entry.Name]; ok {
		idx.Functions[i] = *entry
		return
	}
	pos[entry.Name] = len(idx.Functions)
	idx.Functions = append(idx.Functions, *entry)
}

func addConst(idx *moduleIndex, pos map[string]int, c ConstantInfo) {
	if strings.HasPrefix(c.Name, "_") {
		return
	}
	if i, ok := pos[c.Name]; ok {
		idx.Constants[i] = c
		return
	}
	pos[c.Name] = len(idx.Constants)
	idx.Constants = append(idx.Constants, c)
}

// parseClass builds a classEntry from a class_definition node. The span
// node differs from the definition node for decorated classes.
func parseClass(def, span *sitter.Node, source []byte) *classEntry {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	entry := &classEntry{
		Name:      nodeText(nameNode, source),
		Docstring: noDoc,
		Source:    nodeText(span, source),
	}

	body := def.ChildByFieldName("body")
	if body == nil {
		return entry
	}
	if doc := blockDocstring(body, source); doc != "" {
		entry.Docstring = doc
	}

	methodPos := make(map[string]int)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		var fn *funcEntry
		switch child.Type() {
		case "function_definition":
			fn = parseFunc(child, child, source)
		case "decorated_definition":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if inner := child.NamedChild(j); inner.Type() == "function_definition" {
					fn = parseFunc(inner, child, source)
				}
			}
		}
		if fn == nil || strings.HasPrefix(fn.Name, "_") {
			continue
		}
		if at, ok := methodPos[fn.Name]; ok {
			entry.Methods[at] = *fn
			continue
		}
		methodPos[fn.Name] = len(entry.Methods)
		entry.Methods = append(entry.Methods, *fn)
	}

	return entry
}

// parseFunc builds a funcEntry from a function_definition node.
func parseFunc(def, span *sitter.Node, source []byte) *funcEntry {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	entry := &funcEntry{
		Name:      nodeText(nameNode, source),
		Docstring: noDoc,
		Source:    nodeText(span, source),
	}
	if body := def.ChildByFieldName("body"); body != nil {
		if doc := blockDocstring(body, source); doc != "" {
			entry.Docstring = doc
		}
	}
	return entry
}

// parseConstants extracts constants from a top-level expression statement.
// Only plain assignments to a single identifier qualify; anything the
// renderer cannot represent degrades to a placeholder value rather than
// failing the whole pass.
func parseConstants(stmt *sitter.Node, source []byte) []ConstantInfo {
	var out []ConstantInfo
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		assign := stmt.NamedChild(i)
		if assign.Type() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			continue
		}

		c := ConstantInfo{Name: nodeText(left, source)}
		right := assign.ChildByFieldName("right")
		if right == nil {
			// Annotation-only statement like "x: int" carries no value.
			if ann := assign.ChildByFieldName("type"); ann != nil {
				c.Type = nodeText(ann, source)
				c.Value = ""
				out = append(out, c)
			}
			continue
		}

		c.Type = pythonTypeName(right)
		c.Value = renderValue(right, source)
		out = append(out, c)
	}
	return out
}

// pythonTypeName maps a value node to the runtime type name its literal
// form would have. Non-literal expressions are reported as "unknown",
// mirroring the best-effort nature of the original rendering.
func pythonTypeName(node *sitter.Node) string {
	switch node.Type() {
	case "integer":
		return "int"
	case "float":
		return "float"
	case "string", "concatenated_string":
		return "str"
	case "true", "false":
		return "bool"
	case "none":
		return "NoneType"
	case "list", "list_comprehension":
		return "list"
	case "tuple":
		return "tuple"
	case "dictionary", "dictionary_comprehension":
		return "dict"
	case "set", "set_comprehension":
		return "set"
	case "unary_operator":
		if arg := node.ChildByFieldName("argument"); arg != nil {
			return pythonTypeName(arg)
		}
		return "unknown"
	default:
		return "unknown"
	}
}

// renderValue produces the string rendering of a constant's value.
// String literals are unquoted so the value reads like str(obj) would;
// everything else keeps its source text. Long values are truncated.
func renderValue(node *sitter.Node, source []byte) string {
	var value string
	switch node.Type() {
	case "string":
		value = unquotePyString(nodeText(node, source))
	default:
		value = nodeText(node, source)
	}

	if runes := []rune(value); len(runes) > valueLimit {
		return string(runes[:valueLimit]) + "..."
	}
	return value
}

// blockDocstring returns the cleaned docstring of a module or block node:
// the leading string expression, if any.
func blockDocstring(block *sitter.Node, source []byte) string {
	if block.NamedChildCount() == 0 {
		return ""
	}
	first := block.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" && str.Type() != "concatenated_string" {
		return ""
	}
	return cleanDocstring(unquotePyString(nodeText(str, source)))
}

// unquotePyString strips the prefix and quotes from a Python string
// literal: r'...', b"...", '''...''', f"""...""" and the plain forms.
func unquotePyString(lit string) string {
	s := strings.TrimLeft(lit, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}

// cleanDocstring normalizes docstring indentation the way inspect.getdoc
// does: the first line is kept as-is, the common leading whitespace of the
// remaining lines is removed, and surrounding blank lines are dropped.
func cleanDocstring(doc string) string {
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 {
		return strings.TrimSpace(doc)
	}

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(out, "\n")
	return strings.Trim(result, "\n")
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
