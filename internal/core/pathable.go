// Package core implements the compilation model: the namespace tree that
// names every compiled artifact, the function compiler that lowers
// structured control flow onto flat units linked by continuations, the
// calling convention for a machine without a native call stack, template
// memoization, class symbol resolution and the flatten pass that turns a
// finished tree into the exportable path→unit mapping.
//
// A build is single-threaded and batch: the tree is constructed top-down,
// lowering mutates it as it goes, and flattening happens exactly once at
// the end. Nothing in this package is safe for concurrent use.
package core

import (
	"errors"
	"strings"
)

var (
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrUseAfterEnd     = errors.New("function already ended")
	ErrUnfinishedScope = errors.New("unfinished function scope")
	ErrOutOfOrderEnd   = errors.New("scopes must be ended innermost-first")
	ErrNotImplemented  = errors.New("not implemented")
	ErrNoCallConv      = errors.New("no calling convention installed")
)

// Pathable is implemented by every artifact in the namespace tree. A node
// has a local name and at most one parent; its canonical path is the
// parent's path followed by its own name. A node without a parent is a
// root with a single-element path.
//
// The set of implementations is closed: namespaces, units, function tags,
// functions, templates and classes.
type Pathable interface {
	Name() string
	Parent() *Namespace
	Path() []string

	setParent(parent *Namespace)
	setBuild(b *Build)
}

// PathString renders a canonical path with '/' separators, the form used
// in error messages and as flatten keys.
func PathString(path []string) string {
	return strings.Join(path, "/")
}

// treeNode carries the name and the weak parent back-reference shared by
// all node kinds. The build pointer is propagated on insertion so nodes
// can reach per-build state (calling convention, logger).
type treeNode struct {
	name   string
	parent *Namespace
	build  *Build
}

func (n *treeNode) Name() string {
	return n.name
}

func (n *treeNode) Parent() *Namespace {
	return n.parent
}

func (n *treeNode) Path() []string {
	if n.parent == nil {
		return []string{n.name}
	}
	return append(n.parent.Path(), n.name)
}

func (n *treeNode) setParent(parent *Namespace) {
	n.parent = parent
}

func (n *treeNode) setBuild(b *Build) {
	n.build = b
}
