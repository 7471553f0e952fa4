package core

import (
	"github.com/packsmith/packsmith/internal/mccmd"
)

// MCFunction is one flat unit: an ordered command list that maps 1:1 to an
// exported file. Units are leaves; they never own children.
//
// A unit optionally continues into another unit. The continuation is not a
// command: it stays a live link while lowering rewires the graph and only
// the export pass renders it, as a trailing call to whatever the link
// points at by then.
type MCFunction struct {
	treeNode
	description string
	commands    []mccmd.Command
	tags        []any

	continuation *MCFunction
	severed      bool
}

func newMCFunction(name string) *MCFunction {
	return &MCFunction{treeNode: treeNode{name: name}}
}

// AddCommand appends commands to the unit.
func (fn *MCFunction) AddCommand(cmds ...mccmd.Command) {
	fn.commands = append(fn.commands, cmds...)
}

// Commentf appends a formatted comment line. Placeholders take the same
// arguments as commands, including late-bound symbols and paths.
func (fn *MCFunction) Commentf(format string, args ...any) {
	fn.AddCommand(mccmd.Commentf(format, args...))
}

// Commands returns the unit's command list. The slice is the unit's own;
// callers must not mutate it.
func (fn *MCFunction) Commands() []mccmd.Command {
	return fn.commands
}

// Describe attaches a human-readable description, exported as a comment
// header.
func (fn *MCFunction) Describe(description string) {
	fn.description = description
}

// Description returns the unit's description, empty if none was set.
func (fn *MCFunction) Description() string {
	return fn.description
}

// Tag registers the unit under the given tags. A tag is either a
// *FunctionTag from the tree or a literal "namespace:name" string for
// engine-defined tags such as "minecraft:load".
func (fn *MCFunction) Tag(tags ...any) {
	fn.tags = append(fn.tags, tags...)
}

// Tags returns the unit's tag registrations.
func (fn *MCFunction) Tags() []any {
	return fn.tags
}

// Continuation returns the unit this unit falls through into, nil if it
// terminates.
func (fn *MCFunction) Continuation() *MCFunction {
	return fn.continuation
}

// SetContinuation rewires where the unit falls through to. Passing nil
// makes the unit terminal.
func (fn *MCFunction) SetContinuation(next *MCFunction) {
	fn.continuation = next
}

// IsTag marks unit call targets as plain locations, without the tag
// prefix.
func (fn *MCFunction) IsTag() bool {
	return false
}

// sever makes the unit keep a nil continuation even when its enclosing
// scope ends. Return points must not fall through into the code after
// them.
func (fn *MCFunction) sever() {
	fn.continuation = nil
	fn.severed = true
}
