// Package std installs the runtime support a compiled pack needs: the
// shared scoreboard objective, the argument and return registers, the
// load and tick hooks, and the entity-backed stacks behind the calling
// convention. Installing it wires the build's calling convention, so it
// runs before any code that passes or returns values.
package std

import (
	"errors"
	"fmt"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/flatname"
	"github.com/packsmith/packsmith/internal/mccmd"
)

const NAMESPACE = "packsmith"

var ErrAlreadyInstalled = errors.New("standard library already installed")

// Lib is the installed standard library of one build.
type Lib struct {
	// NS is the namespace everything below lives in.
	NS *core.Namespace

	// Objective is the shared scoreboard objective backing registers,
	// stack pointers and minted variables.
	Objective *flatname.Symbol

	// Arg and Ret are the calling convention registers.
	Arg mccmd.Score
	Ret mccmd.Score

	// Time counts game ticks since pack load.
	Time mccmd.Score

	// LoadTag and TickTag collect user units into the engine's load and
	// tick hooks, after the library's own bookkeeping has run.
	LoadTag *core.FunctionTag
	TickTag *core.FunctionTag

	build     *core.Build
	indexObj  *flatname.Symbol
	valueObj  *flatname.Symbol
	markerTag *flatname.Symbol

	pushTemplate *core.Template
	popTemplate  *core.Template
	stacks       map[int]*stackState
}

// stackState holds the per-stack artifacts shared by the push and pop
// routines of one stack.
type stackState struct {
	tag     *flatname.Symbol
	fresh   *flatname.Symbol
	pointer mccmd.Score
}

// Install builds the standard library into b and installs the calling
// convention. A build takes at most one library.
func Install(b *core.Build) (*Lib, error) {
	if b.CallConv() != nil {
		return nil, ErrAlreadyInstalled
	}

	ns := b.CreateNamespace(NAMESPACE)
	lib := &Lib{
		NS:        ns,
		Objective: ns.UniqueObjective("std"),
		build:     b,
		indexObj:  ns.UniqueObjective("idx"),
		valueObj:  ns.UniqueObjective("val"),
		markerTag: ns.UniqueTag("marker"),
		stacks:    map[int]*stackState{},
	}
	lib.Arg = mccmd.NewScore(ns.UniquePlayer("arg"), lib.Objective)
	lib.Ret = mccmd.NewScore(ns.UniquePlayer("ret"), lib.Objective)
	lib.Time = mccmd.NewScore(ns.UniquePlayer("time"), lib.Objective)
	lib.LoadTag = ns.CreateFunctionTag("on_load")
	lib.TickTag = ns.CreateFunctionTag("on_tick")
	lib.pushTemplate = ns.CreateTemplate("stack_push", lib.buildPush)
	lib.popTemplate = ns.CreateTemplate("stack_pop", lib.buildPop)

	if err := lib.buildLoad(); err != nil {
		return nil, fmt.Errorf("std install: %w", err)
	}
	if err := lib.buildTick(); err != nil {
		return nil, fmt.Errorf("std install: %w", err)
	}

	//the argument stack is stack 0; passing varargs bootstraps on it, so
	//it exists from the start
	push, err := lib.StackPush(0)
	if err != nil {
		return nil, fmt.Errorf("std install: %w", err)
	}
	b.SetCallConv(&core.CallConv{
		Arg:          lib.Arg,
		Ret:          lib.Ret,
		ArgStackPush: push,
	})

	logger := b.Logger()
	logger.Debug().Str("namespace", NAMESPACE).Msg("standard library installed")
	return lib, nil
}

// Score mints a fresh variable on the shared objective.
func (l *Lib) Score(hint string) mccmd.Score {
	return mccmd.NewScore(l.NS.UniquePlayer(hint), l.Objective)
}

// buildLoad emits the unit that runs on every world or pack (re)load. It
// provisions the objectives, clears the registers and any stack entities
// left over from a previous session, then hands off to the load tag.
func (l *Lib) buildLoad() error {
	load := l.NS.CreateFunction("load")
	load.Describe("provisions scoreboard state on pack load")
	load.Tag("minecraft:load")

	greeting, err := Tellraw("@a", Text{Text: "pack loaded", Color: "gray"})
	if err != nil {
		return err
	}
	if err := load.AddCommand(
		greeting,
		mccmd.Literalf("scoreboard objectives add %s dummy", l.Objective),
		mccmd.Literalf("scoreboard objectives add %s dummy", l.indexObj),
		mccmd.Literalf("scoreboard objectives add %s dummy", l.valueObj),
		mccmd.Literalf("scoreboard players reset %s", l.Arg),
		mccmd.Literalf("scoreboard players reset %s", l.Ret),
		mccmd.SetScore(l.Time, mccmd.Int(0)),
		mccmd.Literalf("kill @e[tag=%s]", l.markerTag),
		mccmd.Call(l.LoadTag),
	); err != nil {
		return err
	}
	return load.End()
}

// buildTick emits the unit the engine runs every tick: it advances the
// tick counter and hands off to the tick tag.
func (l *Lib) buildTick() error {
	tick := l.NS.CreateFunction("tick")
	tick.Tag("minecraft:tick")
	if err := tick.AddCommand(
		mccmd.AddScore(l.Time, mccmd.Int(1)),
		mccmd.Call(l.TickTag),
	); err != nil {
		return err
	}
	return tick.End()
}
