package core

import (
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/packsmith/packsmith/internal/flatname"
)

// Build is one compilation. It owns the root namespaces, the flat-name
// allocator every export of this compilation resolves against, and the
// calling convention once a standard library installs one. Two builds
// share nothing, so programs can be compiled side by side.
type Build struct {
	id     ulid.ULID
	logger zerolog.Logger
	alloc  *flatname.Allocator
	roots  []*Namespace
	conv   *CallConv
}

// NewBuild returns an empty build with a nop logger.
func NewBuild() *Build {
	return &Build{
		id:     ulid.Make(),
		logger: zerolog.Nop(),
		alloc:  flatname.NewAllocator(),
	}
}

// ID returns the build's unique id, stamped into the exported pack
// metadata.
func (b *Build) ID() ulid.ULID {
	return b.id
}

func (b *Build) Logger() zerolog.Logger {
	return b.logger
}

func (b *Build) SetLogger(logger zerolog.Logger) {
	b.logger = logger
}

// Allocator returns the build's flat-name allocator.
func (b *Build) Allocator() *flatname.Allocator {
	return b.alloc
}

// CallConv returns the installed calling convention, nil before a
// standard library installs one.
func (b *Build) CallConv() *CallConv {
	return b.conv
}

func (b *Build) SetCallConv(conv *CallConv) {
	b.conv = conv
}

// CreateNamespace makes a root namespace and registers it with the build.
// Root names become the top-level pack namespaces.
func (b *Build) CreateNamespace(name string) *Namespace {
	root := newNamespace(name)
	root.build = b
	b.roots = append(b.roots, root)
	return root
}

// Roots returns the build's root namespaces in creation order.
func (b *Build) Roots() []*Namespace {
	return b.roots
}

// Functions flattens the tree into the exportable path→unit mapping. It
// fails if any function in the tree was never ended; a unit added later
// under a path an earlier unit already claimed replaces it, matching how
// namespace re-adds replace bindings.
func (b *Build) Functions() (*FunctionSet, error) {
	set := newFunctionSet()
	for _, root := range b.roots {
		if err := collectUnits(set, root); err != nil {
			return nil, err
		}
	}
	b.logger.Debug().
		Str("build", b.id.String()).
		Int("units", set.Len()).
		Msg("flattened namespace tree")
	return set, nil
}
