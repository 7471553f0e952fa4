package main

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/mccmd"
	"github.com/packsmith/packsmith/internal/std"
)

// buildShowcase compiles the example program shipped with the tool. It
// leans on every major feature once: branching, recursion, variadic
// calls, templates, records, stacks and the load and tick hooks.
func buildShowcase(b *core.Build) error {
	lib, err := std.Install(b)
	if err != nil {
		return err
	}
	ns := b.CreateNamespace("showcase")

	countdown, err := buildCountdown(ns, lib)
	if err != nil {
		return err
	}
	sum, err := buildSum(ns, lib)
	if err != nil {
		return err
	}
	if err := buildScaling(ns, lib); err != nil {
		return err
	}
	if err := buildStats(ns, lib); err != nil {
		return err
	}
	if err := buildHeartbeat(ns, lib); err != nil {
		return err
	}
	return buildBoot(ns, lib, countdown, sum)
}

// buildCountdown compiles a self-recursive function: it prints its
// argument and calls itself with one less until it reaches zero.
func buildCountdown(ns *core.Namespace, lib *std.Lib) (*core.Function, error) {
	f := ns.CreateFunction("countdown", "n")
	f.Describe("counts its argument down to one, one line per tick of the loop")

	local := lib.Score("countdown.n")
	if err := f.AddCommand(mccmd.SetScore(local, lib.Arg)); err != nil {
		return nil, err
	}
	err := f.IfThen(mccmd.ScoreMatches(local, "1.."), func(branch *core.Function) error {
		err := branch.AddCommand(mccmd.Literalf(
			`tellraw @a {"score":{"name":"%s","objective":"%s"}}`,
			local.Holder, local.Objective,
		))
		if err != nil {
			return err
		}
		if err := branch.AddCommand(mccmd.SubScore(local, mccmd.Int(1))); err != nil {
			return err
		}
		return branch.CallWith(f, local)
	})
	if err != nil {
		return nil, err
	}
	if err := f.End(); err != nil {
		return nil, err
	}
	return f, nil
}

// buildSum compiles a three-argument function. One argument travels in
// the register, the other two arrive on the argument stack and pop back
// newest-first; summing is insensitive to the order.
func buildSum(ns *core.Namespace, lib *std.Lib) (*core.Function, error) {
	argPop, err := lib.StackPop(0)
	if err != nil {
		return nil, err
	}

	f := ns.CreateFunction("sum3", "a", "b", "c")
	f.Describe("adds its three arguments into the return register")

	acc := lib.Score("sum3.acc")
	if err := f.AddCommand(mccmd.SetScore(acc, lib.Arg)); err != nil {
		return nil, err
	}
	for i := 0; i < 2; i++ {
		if err := f.Call(argPop); err != nil {
			return nil, err
		}
		if err := f.AddCommand(mccmd.AddScore(acc, lib.Ret)); err != nil {
			return nil, err
		}
	}
	if err := f.Return(acc); err != nil {
		return nil, err
	}
	if err := f.End(); err != nil {
		return nil, err
	}
	return f, nil
}

// buildScaling generates multiplier functions from a template. Factors
// are template arguments, so asking for the same factor twice reuses the
// generated function; each factor's constant is provisioned at load.
func buildScaling(ns *core.Namespace, lib *std.Lib) error {
	constants := ns.CreateFunction("init_constants")
	constants.Tag(lib.LoadTag)

	scale := ns.CreateTemplate("scale", func(tpl *core.Template, args core.Args) (*core.Function, error) {
		factor, ok := args["factor"].(int)
		if !ok {
			return nil, fmt.Errorf("scale takes an integer factor, got %v", args["factor"])
		}
		k := lib.Score(fmt.Sprintf("const%d", factor))
		if err := constants.AddCommand(mccmd.SetScore(k, mccmd.Int(factor))); err != nil {
			return nil, err
		}
		fn := tpl.CreateFunction(fmt.Sprintf("by%d", factor), "n")
		if err := fn.AddCommand(mccmd.SetScore(lib.Ret, lib.Arg)); err != nil {
			return nil, err
		}
		if err := fn.AddCommand(mccmd.Literalf("scoreboard players operation %s *= %s", lib.Ret, k)); err != nil {
			return nil, err
		}
		return fn, nil
	})

	double, err := scale.Instantiate(core.Args{"factor": 2})
	if err != nil {
		return err
	}
	triple, err := scale.Instantiate(core.Args{"factor": 3})
	if err != nil {
		return err
	}

	//chaining through the registers: the second factor reads the first
	//one's result
	sixfold := ns.CreateFunction("sixfold", "n")
	if err := sixfold.CallWith(double, lib.Arg); err != nil {
		return err
	}
	if err := sixfold.CallWith(triple, lib.Ret); err != nil {
		return err
	}
	if err := sixfold.End(); err != nil {
		return err
	}
	return constants.End()
}

// buildStats defines a base record and an extending one, with an awarding
// function that goes through the inherited accessors.
func buildStats(ns *core.Namespace, lib *std.Lib) error {
	stats, err := lib.DefineRecord(ns, "stats", []string{"kills", "deaths"})
	if err != nil {
		return err
	}
	combat, err := lib.DefineRecord(ns, "combat", []string{"streak"}, stats)
	if err != nil {
		return err
	}

	getKills, err := combat.Getter("kills")
	if err != nil {
		return err
	}
	setKills, err := combat.Setter("kills")
	if err != nil {
		return err
	}
	streak, ok := combat.Field("streak")
	if !ok {
		return fmt.Errorf("combat record lost its streak field")
	}

	award := ns.CreateFunction("award_kill")
	award.Describe("bumps the kill count and the streak")
	if err := award.Call(getKills); err != nil {
		return err
	}
	if err := award.AddCommand(mccmd.AddScore(lib.Ret, mccmd.Int(1))); err != nil {
		return err
	}
	if err := award.CallWith(setKills, lib.Ret); err != nil {
		return err
	}
	if err := award.AddCommand(mccmd.AddScore(streak, mccmd.Int(1))); err != nil {
		return err
	}
	if err := award.End(); err != nil {
		return err
	}

	reset, err := combat.Init()
	if err != nil {
		return err
	}
	onLoad := ns.CreateFunction("reset_stats")
	onLoad.Tag(lib.LoadTag)
	if err := onLoad.Call(reset); err != nil {
		return err
	}
	return onLoad.End()
}

// buildHeartbeat announces the first in-game minute from the tick hook.
func buildHeartbeat(ns *core.Namespace, lib *std.Lib) error {
	f := ns.CreateFunction("heartbeat")
	f.Tag(lib.TickTag)
	err := f.IfThen(mccmd.ScoreMatches(lib.Time, "1200"), func(branch *core.Function) error {
		msg, err := std.Tellraw("@a", std.Text{Text: "one minute in", Color: "aqua"})
		if err != nil {
			return err
		}
		return branch.AddCommand(msg)
	})
	if err != nil {
		return err
	}
	return f.End()
}

// buildBoot wires the load-time entry point that kicks the showcase off.
func buildBoot(ns *core.Namespace, lib *std.Lib, countdown *core.Function, sum *core.Function) error {
	boot := ns.CreateFunction("boot")
	boot.Describe("runs once per reload after the runtime is provisioned")
	boot.Tag(lib.LoadTag)

	greeting, err := std.Tellraw("@a", std.Text{Text: "showcase ready", Color: "gold"})
	if err != nil {
		return err
	}
	if err := boot.AddCommand(greeting); err != nil {
		return err
	}
	if err := boot.CallWith(countdown, mccmd.Int(3)); err != nil {
		return err
	}
	if err := boot.CallWith(sum, mccmd.Int(1), mccmd.Int(2), mccmd.Int(3)); err != nil {
		return err
	}
	return boot.End()
}
