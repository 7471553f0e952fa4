package core

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/mccmd"
)

// CallConv is the per-build calling convention: the scoreboard registers
// that carry the single scalar argument and the return value, and the
// routine that pushes a value onto the argument stack for calls with more
// than one argument. The standard library installs one on the build; a
// build without one cannot emit calls that pass or return values.
type CallConv struct {
	// Arg is the argument register. The caller writes it immediately
	// before dispatch; the callee reads it first, a callee that calls out
	// must spill it beforehand.
	Arg mccmd.Score

	// Ret is the return register, written by Return and read by the
	// caller after the call.
	Ret mccmd.Score

	// ArgStackPush pushes the argument register onto the argument stack.
	// Variadic calls bootstrap on the convention itself: each extra value
	// is passed to this routine as its single argument.
	ArgStackPush *Function
}

func (f *Function) callConv() (*CallConv, error) {
	if f.build == nil || f.build.conv == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoCallConv, PathString(f.Path()))
	}
	return f.build.conv, nil
}

// Call emits a call to callee that passes nothing.
func (f *Function) Call(callee *Function) error {
	return f.CallWith(callee, nil)
}

// CallWith emits a call to callee. arg, when non-nil, is written to the
// argument register right before dispatch. Any varargs are pushed onto
// the argument stack first, leftmost deepest, each by a nested
// single-argument call to the push routine; the callee pops them back
// rightmost first.
func (f *Function) CallWith(callee *Function, arg mccmd.Expression, varargs ...mccmd.Expression) error {
	suffix := ""
	if arg != nil {
		suffix += " with one argument"
	}
	if len(varargs) > 0 {
		suffix += fmt.Sprintf(" and %d stacked", len(varargs))
	}
	if err := f.Commentf("call %s"+suffix, mccmd.PathOf(callee)); err != nil {
		return err
	}

	if arg != nil || len(varargs) > 0 {
		conv, err := f.callConv()
		if err != nil {
			return err
		}
		if len(varargs) > 0 && conv.ArgStackPush == nil {
			return fmt.Errorf("%w: no argument-stack push routine", ErrNoCallConv)
		}
		for _, extra := range varargs {
			if err := f.CallWith(conv.ArgStackPush, extra); err != nil {
				return err
			}
		}
		if arg != nil {
			if err := f.AddCommand(mccmd.SetScore(conv.Arg, arg)); err != nil {
				return err
			}
		}
	}
	return f.AddCommand(mccmd.Call(callee.Entry()))
}

// Return writes value into the return register and severs the active
// unit: code appended after a return belongs to the surrounding scope's
// continuation logic and must not run on the returning path.
func (f *Function) Return(value mccmd.Expression) error {
	conv, err := f.callConv()
	if err != nil {
		return err
	}
	if err := f.AddCommand(mccmd.SetScore(conv.Ret, value)); err != nil {
		return err
	}
	f.cur.sever()
	return nil
}
