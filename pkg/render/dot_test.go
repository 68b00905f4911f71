package render

import (
	"strings"
	"testing"

	"github.com/liblens/liblens/pkg/introspect"
	"github.com/liblens/liblens/pkg/pydist"
)

func sampleInfo() *introspect.LibraryInfo {
	return &introspect.LibraryInfo{
		Metadata: pydist.Distribution{Name: "widgets", Version: "1.2.3"},
		Classes: []introspect.ClassInfo{
			{Name: "Widget", Methods: []introspect.MethodInfo{{Name: "resize"}, {Name: "label"}}},
		},
		Functions: []introspect.FunctionInfo{{Name: "render"}},
		Constants: []introspect.ConstantInfo{
			{Name: "VERSION", Type: "str", Value: "1.2.3"},
			{Name: "MAX_SIZE", Type: "int", Value: "100"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleInfo(), Options{ShowMethods: true, MaxConstants: 10})

	for _, want := range []string{
		"digraph G {",
		`"widgets" [label="widgets\n1.2.3", fillcolor=lightblue];`,
		`"widgets" -> "class:Widget";`,
		`"class:Widget" -> "method:Widget.resize";`,
		`"func:render" [label="render()", shape=ellipse];`,
		"VERSION: str",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_CollapsedMethods(t *testing.T) {
	dot := ToDOT(sampleInfo(), Options{})

	if !strings.Contains(dot, `label="Widget\n2 methods"`) {
		t.Errorf("expected method count label:\n%s", dot)
	}
	if strings.Contains(dot, "method:Widget.resize") {
		t.Errorf("expected no method nodes:\n%s", dot)
	}
	if strings.Contains(dot, "constants") {
		t.Errorf("expected no constants node when MaxConstants is 0:\n%s", dot)
	}
}

func TestToDOT_ConstantsTruncated(t *testing.T) {
	dot := ToDOT(sampleInfo(), Options{MaxConstants: 1})

	if !strings.Contains(dot, "VERSION: str") {
		t.Errorf("expected first constant:\n%s", dot)
	}
	if strings.Contains(dot, "MAX_SIZE") {
		t.Errorf("expected second constant dropped:\n%s", dot)
	}
	if !strings.Contains(dot, "1 more") {
		t.Errorf("expected overflow marker:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 144.00 72.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 144.00 72.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="144" height="72"`) {
		t.Errorf("pixel dimensions not set: %s", out)
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("expected unchanged output, got %s", got)
	}
}
