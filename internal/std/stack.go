package std

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/mccmd"
)

// Stacks are families of marker entities. A value lives in the marker's
// value score, its depth in the index score; the stack pointer is a fake
// player holding the next free index. Stack 0 is the argument stack the
// calling convention pushes varargs onto; higher numbers are free for
// program use.

// StackPush returns the routine pushing the argument register onto stack
// n, generating it on first use.
func (l *Lib) StackPush(n int) (*core.Function, error) {
	return l.pushTemplate.Instantiate(core.Args{"stack": n})
}

// StackPop returns the routine popping the top of stack n into the
// return register, generating it on first use.
func (l *Lib) StackPop(n int) (*core.Function, error) {
	return l.popTemplate.Instantiate(core.Args{"stack": n})
}

func (l *Lib) stack(n int) *stackState {
	st, ok := l.stacks[n]
	if !ok {
		st = &stackState{
			tag:     l.NS.UniqueTag(fmt.Sprintf("stack%d", n)),
			fresh:   l.NS.UniqueTag(fmt.Sprintf("stack%d.new", n)),
			pointer: mccmd.NewScore(l.NS.UniquePlayer(fmt.Sprintf("sp%d", n)), l.Objective),
		}
		l.stacks[n] = st
	}
	return st
}

func stackIndex(args core.Args) (int, error) {
	n, ok := args["stack"].(int)
	if !ok {
		return 0, fmt.Errorf("stack templates take an integer %q argument", "stack")
	}
	return n, nil
}

func (l *Lib) buildPush(tpl *core.Template, args core.Args) (*core.Function, error) {
	n, err := stackIndex(args)
	if err != nil {
		return nil, err
	}
	st := l.stack(n)

	fn := tpl.CreateFunction(fmt.Sprintf("stack%d", n))
	fn.Describe(fmt.Sprintf("pushes the argument register onto stack %d", n))
	err = fn.AddCommand(
		mccmd.Literalf("summon marker ~ ~ ~ {Tags:[\"%s\",\"%s\",\"%s\"]}", l.markerTag, st.tag, st.fresh),
		mccmd.Literalf("scoreboard players operation @e[tag=%s] %s = %s", st.fresh, l.indexObj, st.pointer),
		mccmd.Literalf("scoreboard players operation @e[tag=%s] %s = %s", st.fresh, l.valueObj, l.Arg),
		mccmd.AddScore(st.pointer, mccmd.Int(1)),
		mccmd.Literalf("tag @e[tag=%s] remove %s", st.fresh, st.fresh),
	)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func (l *Lib) buildPop(tpl *core.Template, args core.Args) (*core.Function, error) {
	n, err := stackIndex(args)
	if err != nil {
		return nil, err
	}
	st := l.stack(n)

	fn := tpl.CreateFunction(fmt.Sprintf("stack%d", n))
	fn.Describe(fmt.Sprintf("pops the top of stack %d into the return register", n))
	err = fn.AddCommand(
		mccmd.SubScore(st.pointer, mccmd.Int(1)),
		mccmd.Literalf("execute as @e[tag=%s] if score @s %s = %s run scoreboard players operation %s = @s %s",
			st.tag, l.indexObj, st.pointer, l.Ret, l.valueObj),
		mccmd.Literalf("execute as @e[tag=%s] if score @s %s = %s run kill @s",
			st.tag, l.indexObj, st.pointer),
	)
	if err != nil {
		return nil, err
	}
	return fn, nil
}
