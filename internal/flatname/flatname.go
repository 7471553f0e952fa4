// Package flatname issues globally distinct flat string identifiers for the
// target machine's scoreboard objectives, score holders (fake players) and
// entity tags. The target has no hierarchical addressing for any of these, so
// the owning namespace path is folded into the generated string instead of
// being preserved structurally.
package flatname

// Kind describes which flat namespace of the target machine a symbol
// belongs to. Names only have to be unique within their kind.
type Kind uint8

const (
	KindObjective Kind = iota + 1
	KindPlayer
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindObjective:
		return "objective"
	case KindPlayer:
		return "player"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Owner is the tree node a symbol was minted under, usually a namespace.
// Only its canonical path is consulted, and only when the final name is
// derived.
type Owner interface {
	Path() []string
}

// A Symbol is a placeholder for a flat global name. Symbols are compared by
// identity during the build: every build-time reference to the same logical
// entity must hold the same *Symbol so that export resolves them to a single
// allocation.
type Symbol struct {
	kind  Kind
	hint  string
	owner Owner
}

// NewSymbol creates a symbol of the given kind. The hint is the preferred
// local name, owner may be nil for symbols minted outside any namespace.
func NewSymbol(kind Kind, hint string, owner Owner) *Symbol {
	return &Symbol{kind: kind, hint: hint, owner: owner}
}

func (s *Symbol) Kind() Kind {
	return s.kind
}

func (s *Symbol) Hint() string {
	return s.hint
}

func (s *Symbol) Owner() Owner {
	return s.owner
}

// Resolver resolves symbols to their final flat names. Implemented by
// *Allocator; commands hold symbols until export and resolve them through
// this interface.
type Resolver interface {
	NameOf(sym *Symbol) string
}
