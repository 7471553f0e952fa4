package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Args are the named arguments a template is instantiated with. Values
// are compared by their rendered form, so two argument sets that print
// the same are the same instantiation.
type Args map[string]any

// TemplateFunc builds the function for one argument set. It receives the
// template so it can parent the function under it (CreateFunction on tpl
// is the usual way) and mint helper artifacts next to it.
type TemplateFunc func(tpl *Template, args Args) (*Function, error)

// Template memoizes function generation per argument set. Instantiating
// with arguments the template has already seen returns the function built
// the first time, so call sites can instantiate freely without
// duplicating units.
type Template struct {
	Namespace
	builder  TemplateFunc
	compiled map[string]*Function
}

func newTemplate(name string, builder TemplateFunc) *Template {
	return &Template{
		Namespace: *newNamespace(name),
		builder:   builder,
		compiled:  map[string]*Function{},
	}
}

// Instantiate returns the function compiled for args, building and ending
// it on first use. Argument order does not matter: {a:1, b:2} and
// {b:2, a:1} name the same instantiation.
func (t *Template) Instantiate(args Args) (*Function, error) {
	key := canonicalKey(args)
	if fn, ok := t.compiled[key]; ok {
		return fn, nil
	}
	if t.builder == nil {
		return nil, fmt.Errorf("template %s has no builder", PathString(t.Path()))
	}
	fn, err := t.builder(t, args)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", PathString(t.Path()), err)
	}
	if fn == nil {
		return nil, fmt.Errorf("template %s built no function", PathString(t.Path()))
	}
	if fn.Parent() == nil {
		t.Add(fn)
	}
	if err := fn.End(); err != nil {
		return nil, fmt.Errorf("template %s: %w", PathString(t.Path()), err)
	}
	t.compiled[key] = fn
	return fn, nil
}

// Compiled returns how many distinct argument sets have been built.
func (t *Template) Compiled() int {
	return len(t.compiled)
}

func canonicalKey(args Args) string {
	names := maps.Keys(args)
	slices.Sort(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(0)
		}
		fmt.Fprintf(&b, "%s=%v", name, args[name])
	}
	return b.String()
}
