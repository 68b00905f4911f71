package pydist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/liblens/liblens/pkg/errors"
)

// ModuleKind classifies how a located module is shipped.
type ModuleKind string

const (
	// ModuleSource is a pure-Python module with readable source.
	ModuleSource ModuleKind = "source"

	// ModuleStub is a .pyi type stub; structure is introspectable but the
	// runtime implementation lives elsewhere.
	ModuleStub ModuleKind = "stub"

	// ModuleBinary is a compiled extension (.so/.pyd) with no source text.
	ModuleBinary ModuleKind = "binary"
)

// Module is the resolved top-level module of a library.
type Module struct {
	Name string     // importable module name (e.g. "sklearn")
	File string     // absolute path of the module file
	Kind ModuleKind
}

// Locate resolves a library name to its top-level module file.
//
// Candidate module names are tried in order: the lowercased name, the name
// verbatim (some libraries are case-sensitive), an underscore variant of
// hyphenated names, and finally the modules listed in the matching
// distribution's top_level.txt. Within each candidate, a package
// __init__.py wins over a single-file module, which wins over a .pyi stub,
// which wins over a compiled extension.
//
// Returns a LIBRARY_NOT_FOUND error when nothing resolves.
func (e *Env) Locate(name string) (*Module, error) {
	candidates := []string{strings.ToLower(name)}
	if name != strings.ToLower(name) {
		candidates = append(candidates, name)
	}
	if underscored := strings.ReplaceAll(strings.ToLower(name), "-", "_"); underscored != strings.ToLower(name) {
		candidates = append(candidates, underscored)
	}
	if dist, ok := e.Distribution(name); ok {
		candidates = append(candidates, topLevelModules(dist.InfoDir)...)
	}

	for _, candidate := range candidates {
		for _, root := range e.roots {
			if mod := locateIn(root, candidate); mod != nil {
				return mod, nil
			}
		}
	}

	return nil, errors.New(errors.ErrCodeLibraryNotFound,
		"Library '%s' not found or could not be imported.", name)
}

// locateIn looks for one candidate module name under one root.
func locateIn(root, name string) *Module {
	pkg := filepath.Join(root, name)

	if path := filepath.Join(pkg, "__init__.py"); fileExists(path) {
		return &Module{Name: name, File: path, Kind: ModuleSource}
	}
	if path := filepath.Join(root, name+".py"); fileExists(path) {
		return &Module{Name: name, File: path, Kind: ModuleSource}
	}
	if path := filepath.Join(pkg, "__init__.pyi"); fileExists(path) {
		return &Module{Name: name, File: path, Kind: ModuleStub}
	}
	if path := filepath.Join(root, name+".pyi"); fileExists(path) {
		return &Module{Name: name, File: path, Kind: ModuleStub}
	}

	// Compiled extensions: name.cpython-312-x86_64-linux-gnu.so and
	// friends. Any match means the library exists but has no source.
	for _, pattern := range []string{name + "*.so", name + "*.pyd"} {
		if matches, _ := filepath.Glob(filepath.Join(root, pattern)); len(matches) > 0 {
			return &Module{Name: name, File: matches[0], Kind: ModuleBinary}
		}
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
