package core

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/mccmd"
)

// Function is the compiler for one callable: a namespace whose children
// are the units produced by lowering, plus an entry unit that shares the
// function's own path. Code is appended through the function, never to
// units directly; the function tracks which unit is active and rewires
// continuations as branches open and close.
//
// Lowering turns nesting into flatness. A conditional does not nest: it
// splits the instruction stream, emits a two-way dispatch and moves the
// active unit past the split. The branch itself is a child Function and
// compiles the same way, so arbitrarily deep source nesting comes out as
// a flat set of units linked by dispatch commands and continuations.
type Function struct {
	Namespace
	params []string

	entry        *MCFunction
	cur          *MCFunction
	continuation *MCFunction
	ended        bool

	// branch scope bookkeeping: branches opened on this function must end
	// innermost-first, and this function cannot end while any is open
	scopeOwner   *Function
	openBranches []*Function
}

// NewFunction returns a detached function, usually attached later with
// Add. Template builders may also return one detached and let
// Instantiate parent it.
func NewFunction(name string, params ...string) *Function {
	return newFunction(name, params...)
}

func newFunction(name string, params ...string) *Function {
	f := &Function{
		Namespace: *newNamespace(name),
		params:    params,
	}
	//TODO: spill declared params from the argument stack into local scores
	//once functions take more than the single register argument
	f.entry = newMCFunction(name)
	f.cur = f.entry
	return f
}

func (f *Function) setParent(parent *Namespace) {
	f.Namespace.setParent(parent)
	f.entry.setParent(parent)
}

func (f *Function) setBuild(b *Build) {
	f.Namespace.setBuild(b)
	f.entry.setBuild(b)
}

// Entry returns the unit that starts the function. It shares the
// function's path and is what callers dispatch to.
func (f *Function) Entry() *MCFunction {
	return f.entry
}

// Current returns the unit that currently receives appended commands.
func (f *Function) Current() *MCFunction {
	return f.cur
}

// Params returns the declared parameter names.
func (f *Function) Params() []string {
	return f.params
}

// Continuation returns the unit control resumes in after the function's
// final unit, nil if the function terminates.
func (f *Function) Continuation() *MCFunction {
	return f.continuation
}

// SetContinuation wires where control resumes after the function. End
// copies the link onto whichever unit is active when the scope closes.
func (f *Function) SetContinuation(next *MCFunction) {
	f.continuation = next
}

// Ended reports whether the function's scope has been closed.
func (f *Function) Ended() bool {
	return f.ended
}

// Describe attaches a description to the entry unit.
func (f *Function) Describe(description string) {
	f.entry.Describe(description)
}

// Tag registers the entry unit under function tags, for example the
// engine's "minecraft:load" hook.
func (f *Function) Tag(tags ...any) {
	f.entry.Tag(tags...)
}

// AddCommand appends commands to the active unit.
func (f *Function) AddCommand(cmds ...mccmd.Command) error {
	if f.ended {
		return fmt.Errorf("%w: %s", ErrUseAfterEnd, PathString(f.Path()))
	}
	f.cur.AddCommand(cmds...)
	return nil
}

// Commentf appends a formatted comment line to the active unit.
func (f *Function) Commentf(format string, args ...any) error {
	if f.ended {
		return fmt.Errorf("%w: %s", ErrUseAfterEnd, PathString(f.Path()))
	}
	f.cur.Commentf(format, args...)
	return nil
}

// If splits the function on cond. It creates a branch function and a
// continuation unit as children, emits the two dispatch commands into the
// active unit and moves the active unit to the continuation, so commands
// appended to f afterwards run regardless of the branch. Commands for the
// taken case are appended to the returned branch, which must be ended
// before f.
//
// There is no else: the dispatch enters the branch when cond holds and
// the continuation when it does not, and the ended branch falls through
// into the same continuation.
func (f *Function) If(cond mccmd.Condition) (*Function, error) {
	if f.ended {
		return nil, fmt.Errorf("%w: %s", ErrUseAfterEnd, PathString(f.Path()))
	}

	n := len(f.children)
	branch := newFunction(fmt.Sprintf("if%d", n))
	cont := newMCFunction(fmt.Sprintf("if-continue%d", n))
	f.Add(branch, cont)

	condFormat, condArgs := cond.Fragment()
	f.cur.AddCommand(
		mccmd.Compose(mccmd.Literalf("execute if "+condFormat+" run", condArgs...), mccmd.Call(branch.Entry())),
		mccmd.Compose(mccmd.Literalf("execute unless "+condFormat+" run", condArgs...), mccmd.Call(cont)),
	)

	branch.continuation = cont
	branch.scopeOwner = f
	f.openBranches = append(f.openBranches, branch)
	f.cur = cont
	return branch, nil
}

// IfThen runs body against the branch for cond and ends it, covering the
// common case where the branch is built in one place.
func (f *Function) IfThen(cond mccmd.Condition, body func(branch *Function) error) error {
	branch, err := f.If(cond)
	if err != nil {
		return err
	}
	if err := body(branch); err != nil {
		return err
	}
	return branch.End()
}

// While is reserved. The engine has no backward jump, so loop lowering
// needs its own unit shape; until it exists, loops are written as
// functions that conditionally call themselves.
func (f *Function) While(cond mccmd.Condition) (*Function, error) {
	return nil, fmt.Errorf("%w: while lowering", ErrNotImplemented)
}

// End closes the function's scope. The unit active at that point receives
// the function's continuation, unless a return already severed it. Ending
// an ended function is a no-op; ending while a branch is still open, or
// before a sibling branch opened later, is an error.
func (f *Function) End() error {
	if f.ended {
		return nil
	}
	if len(f.openBranches) > 0 {
		open := f.openBranches[len(f.openBranches)-1]
		return fmt.Errorf("%w: %s is still open", ErrUnfinishedScope, PathString(open.Path()))
	}
	if f.scopeOwner != nil {
		owner := f.scopeOwner
		if n := len(owner.openBranches); n == 0 || owner.openBranches[n-1] != f {
			return fmt.Errorf("%w: %s ended while an inner branch is open", ErrOutOfOrderEnd, PathString(f.Path()))
		}
		owner.openBranches = owner.openBranches[:len(owner.openBranches)-1]
	}
	if !f.cur.severed {
		f.cur.SetContinuation(f.continuation)
	}
	f.ended = true
	return nil
}
