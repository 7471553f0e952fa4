package flatname

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const DIGEST_LEN = 8 //hex characters of the blake2b digest folded into colliding names

// An Allocator derives the final textual form of symbols. Derivation is
// deterministic for a given (owner path, hint, kind) triple and request
// order, and a symbol is assigned exactly one name for the allocator's
// lifetime. The allocator is not safe for concurrent use; builds are
// single-threaded by construction.
type Allocator struct {
	assigned map[*Symbol]string
	taken    map[takenKey]struct{}
}

type takenKey struct {
	kind Kind
	name string
}

func NewAllocator() *Allocator {
	return &Allocator{
		assigned: make(map[*Symbol]string),
		taken:    make(map[takenKey]struct{}),
	}
}

// NameOf returns the flat name of sym, deriving and reserving it on first
// request. The sanitized hint is used directly when free; otherwise a digest
// of the owning path is appended, then a counter. Player symbols are
// prefixed with '#' so they never clash with real player names and stay out
// of sidebar displays.
func (a *Allocator) NameOf(sym *Symbol) string {
	if name, ok := a.assigned[sym]; ok {
		return name
	}

	base := sanitize(sym.hint)
	if base == "" {
		base = "sym"
	}

	candidate := base
	if a.isTaken(sym.kind, candidate) {
		candidate = base + "." + a.digest(sym)
	}
	for i := 2; a.isTaken(sym.kind, candidate); i++ {
		candidate = fmt.Sprintf("%s.%s%d", base, a.digest(sym), i)
	}

	name := decorate(sym.kind, candidate)
	a.taken[takenKey{sym.kind, candidate}] = struct{}{}
	a.assigned[sym] = name
	return name
}

func (a *Allocator) isTaken(kind Kind, name string) bool {
	_, ok := a.taken[takenKey{kind, name}]
	return ok
}

// digest folds the owning path into a short collision-resistant string.
func (a *Allocator) digest(sym *Symbol) string {
	var buf strings.Builder
	buf.WriteByte(byte(sym.kind))
	if sym.owner != nil {
		for _, part := range sym.owner.Path() {
			buf.WriteString(part)
			buf.WriteByte(0)
		}
	}
	buf.WriteString(sym.hint)

	sum := blake2b.Sum256([]byte(buf.String()))
	return hex.EncodeToString(sum[:])[:DIGEST_LEN]
}

func decorate(kind Kind, name string) string {
	if kind == KindPlayer {
		return "#" + name
	}
	return name
}

// sanitize keeps the characters the scoreboard accepts in objective and
// holder names and replaces everything else with '_'.
func sanitize(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
