package introspect

import (
	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/pydist"
)

// LibraryInfo is the structured description of one library's top level.
type LibraryInfo struct {
	Metadata  pydist.Distribution `json:"metadata"`
	Classes   []ClassInfo         `json:"classes"`
	Functions []FunctionInfo      `json:"functions"`
	Constants []ConstantInfo      `json:"constants"`
}

// ClassInfo describes one public class and its public methods.
type ClassInfo struct {
	Name      string       `json:"name"`
	Docstring string       `json:"docstring"`
	Methods   []MethodInfo `json:"methods"`
}

// MethodInfo describes one public method of a class.
type MethodInfo struct {
	Name      string `json:"name"`
	Docstring string `json:"docstring"`
}

// FunctionInfo describes one public top-level function.
type FunctionInfo struct {
	Name      string `json:"name"`
	Docstring string `json:"docstring"`
}

// ConstantInfo describes one public top-level value that is neither a
// class nor a callable. Value holds the source rendering of the constant,
// truncated when very long.
type ConstantInfo struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ElementKind identifies which namespace a source request targets.
type ElementKind string

const (
	KindClass    ElementKind = "class"
	KindFunction ElementKind = "function"
	KindMethod   ElementKind = "method"
)

// ParseKind validates a kind string from a request.
func ParseKind(s string) (ElementKind, error) {
	switch ElementKind(s) {
	case KindClass, KindFunction, KindMethod:
		return ElementKind(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidRequest,
		"invalid element type %q: must be one of class, function, method", s)
}

// SourceRequest identifies exactly one element whose source is wanted.
// Parent names the enclosing class and is required when Kind is method.
type SourceRequest struct {
	Kind   ElementKind
	Name   string
	Parent string
}

// Example is one runnable code example extracted from a library.
type Example struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}
