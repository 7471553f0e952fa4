package core

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/flatname"
)

// Namespace is an inner node of the artifact tree. Children are looked up
// by local name; insertion order is preserved so exports are stable.
//
// A child belongs to at most one namespace. Re-adding a name replaces the
// binding: the namespace forgets the old child, but the old child keeps
// its parent pointer and still reports the same path.
type Namespace struct {
	treeNode
	children map[string]Pathable
	order    []string
}

// NewNamespace returns a detached namespace, usually attached later with
// Add. Roots are made with Build.CreateNamespace instead.
func NewNamespace(name string) *Namespace {
	return newNamespace(name)
}

func newNamespace(name string) *Namespace {
	return &Namespace{
		treeNode: treeNode{name: name},
		children: map[string]Pathable{},
	}
}

func (ns *Namespace) setBuild(b *Build) {
	ns.treeNode.setBuild(b)
	for _, name := range ns.order {
		ns.children[name].setBuild(b)
	}
}

// Add inserts children under ns, reparenting each onto ns and propagating
// the owning build. Adding a name that is already bound replaces the
// binding without touching the replaced child.
func (ns *Namespace) Add(children ...Pathable) {
	for _, child := range children {
		if _, bound := ns.children[child.Name()]; !bound {
			ns.order = append(ns.order, child.Name())
		}
		ns.children[child.Name()] = child
		child.setParent(ns)
		child.setBuild(ns.build)
	}
}

// Get returns the child bound to name, or ErrUnknownSymbol.
func (ns *Namespace) Get(name string) (Pathable, error) {
	child, ok := ns.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: no %q in %s", ErrUnknownSymbol, name, PathString(ns.Path()))
	}
	return child, nil
}

// Children returns the namespace's children in insertion order. Replaced
// names keep their original position.
func (ns *Namespace) Children() []Pathable {
	children := make([]Pathable, len(ns.order))
	for i, name := range ns.order {
		children[i] = ns.children[name]
	}
	return children
}

// CreateNamespace makes a sub-namespace, inserts it and returns it.
func (ns *Namespace) CreateNamespace(name string) *Namespace {
	child := newNamespace(name)
	ns.Add(child)
	return child
}

// CreateMCFunction makes a raw unit, inserts it and returns it.
func (ns *Namespace) CreateMCFunction(name string) *MCFunction {
	fn := newMCFunction(name)
	ns.Add(fn)
	return fn
}

// CreateFunction makes a function with the given declared parameter names,
// inserts it and returns it. The function's entry unit shares the
// function's path, so calling the function is calling <path of ns>/name.
func (ns *Namespace) CreateFunction(name string, params ...string) *Function {
	fn := newFunction(name, params...)
	ns.Add(fn)
	return fn
}

// CreateFunctionTag makes a function tag, inserts it and returns it.
func (ns *Namespace) CreateFunctionTag(name string) *FunctionTag {
	tag := newFunctionTag(name)
	ns.Add(tag)
	return tag
}

// CreateClass makes a class with the given resolution parents, inserts it
// and returns it.
func (ns *Namespace) CreateClass(name string, parents ...*Class) *Class {
	class := newClass(name, parents)
	ns.Add(class)
	return class
}

// CreateTemplate makes a template around builder, inserts it and returns
// it.
func (ns *Namespace) CreateTemplate(name string, builder TemplateFunc) *Template {
	tpl := newTemplate(name, builder)
	ns.Add(tpl)
	return tpl
}

// UniqueObjective mints a fresh scoreboard objective symbol owned by ns.
// The symbol is distinct from every other minted symbol regardless of
// hint; the hint only steers the exported name.
func (ns *Namespace) UniqueObjective(hint string) *flatname.Symbol {
	return flatname.NewSymbol(flatname.KindObjective, hint, ns)
}

// UniquePlayer mints a fresh fake-player symbol owned by ns. Fake players
// resolve with a '#' prefix so they never collide with real player names.
func (ns *Namespace) UniquePlayer(hint string) *flatname.Symbol {
	return flatname.NewSymbol(flatname.KindPlayer, hint, ns)
}

// UniqueTag mints a fresh entity-tag symbol owned by ns.
func (ns *Namespace) UniqueTag(hint string) *flatname.Symbol {
	return flatname.NewSymbol(flatname.KindTag, hint, ns)
}

// FunctionTag names a group of units that the engine runs together, for
// example the load and tick hooks. Units register themselves with
// MCFunction.Tag; the export pass aggregates registrations into the tag's
// JSON file.
type FunctionTag struct {
	treeNode
}

func newFunctionTag(name string) *FunctionTag {
	return &FunctionTag{treeNode: treeNode{name: name}}
}

// IsTag marks tag call targets so they render with the '#' location
// prefix.
func (t *FunctionTag) IsTag() bool {
	return true
}
