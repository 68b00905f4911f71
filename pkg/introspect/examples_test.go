package introspect

import (
	"context"
	"reflect"
	"testing"

	"github.com/liblens/liblens/pkg/errors"
)

func TestExamples_FromDocstrings(t *testing.T) {
	in, _ := newTestIntrospector(t, "widgets", sampleModule)

	examples, err := in.Examples(context.Background(), "widgets")
	if err != nil {
		t.Fatalf("Examples: %v", err)
	}

	// One doctest in the module docstring, one in Widget.label.
	if len(examples) != 2 {
		t.Fatalf("examples = %d, want 2", len(examples))
	}

	titles := []string{examples[0].Title, examples[1].Title}
	if !reflect.DeepEqual(titles, []string{"widgets", "Widget.label"}) {
		t.Errorf("titles = %v", titles)
	}

	for _, ex := range examples {
		if ex.Language != "python" {
			t.Errorf("language = %s, want python", ex.Language)
		}
		if ex.Source != "docstring" {
			t.Errorf("source = %s, want docstring", ex.Source)
		}
		if ex.URL != "https://pypi.org/project/widgets/" {
			t.Errorf("url = %s", ex.URL)
		}
	}

	if examples[1].Code != ">>> Widget(\"x\").label()\n'x'" {
		t.Errorf("code = %q", examples[1].Code)
	}
}

func TestExamples_NoDoctests(t *testing.T) {
	in, _ := newTestIntrospector(t, "plain", "def f():\n    \"\"\"No examples here.\"\"\"\n    return 1\n")

	examples, err := in.Examples(context.Background(), "plain")
	if err != nil {
		t.Fatalf("Examples: %v", err)
	}
	if len(examples) != 0 {
		t.Errorf("examples = %d, want 0", len(examples))
	}
}

func TestExamples_LibraryNotFound(t *testing.T) {
	in, _ := newTestIntrospector(t, "plain", "X = 1\n")

	_, err := in.Examples(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeLibraryNotFound) {
		t.Errorf("code = %v, want LIBRARY_NOT_FOUND", errors.GetCode(err))
	}
}

func TestDoctestBlocks(t *testing.T) {
	doc := "Summary.\n\n>>> add(1, 2)\n3\n\nText in between.\n\n>>> add(2, 2)\n4"
	blocks := doctestBlocks(doc)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0] != ">>> add(1, 2)\n3" {
		t.Errorf("block[0] = %q", blocks[0])
	}
	if blocks[1] != ">>> add(2, 2)\n4" {
		t.Errorf("block[1] = %q", blocks[1])
	}

	if got := doctestBlocks(""); got != nil {
		t.Errorf("empty docstring should yield nil, got %v", got)
	}
	if got := doctestBlocks(noDoc); got != nil {
		t.Errorf("placeholder docstring should yield nil, got %v", got)
	}
}
