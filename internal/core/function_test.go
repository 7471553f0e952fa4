package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packsmith/packsmith/internal/mccmd"
)

func TestFunctionLowering(t *testing.T) {

	newCondition := func(root *Namespace) mccmd.Condition {
		score := mccmd.NewScore(root.UniquePlayer("flag"), root.UniqueObjective("flag"))
		return mccmd.ScoreMatches(score, "1..")
	}

	t.Run("if splits the stream into branch and continuation", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")
		entry := f.Entry()

		branch, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}

		//the unit that was active before the split got exactly the two
		//dispatch commands
		assert.Len(t, entry.Commands(), 2)

		assert.Equal(t, "if0", branch.Name())
		assert.Equal(t, []string{"demo", "greet", "if0"}, branch.Path())
		assert.NotSame(t, branch.Entry(), f.Current())
		assert.Equal(t, "if-continue0", f.Current().Name())

		//the branch rejoins the main stream once ended
		assert.NoError(t, branch.End())
		assert.Same(t, f.Current(), branch.Entry().Continuation())
	})

	t.Run("dispatch commands resolve against the branch paths", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")
		entry := f.Entry()

		score := mccmd.NewScore(root.UniquePlayer("flag"), root.UniqueObjective("flag"))
		branch, err := f.If(mccmd.ScoreMatches(score, "1.."))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, branch.End())
		assert.NoError(t, f.End())

		alloc := b.Allocator()
		enter, err := entry.Commands()[0].Resolve(alloc)
		if !assert.NoError(t, err) {
			return
		}
		skip, err := entry.Commands()[1].Resolve(alloc)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "execute if score #flag flag matches 1.. run function demo:greet/if0", enter)
		assert.Equal(t, "execute unless score #flag flag matches 1.. run function demo:greet/if-continue0", skip)
	})

	t.Run("commands after the split run on both paths", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")

		branch, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, branch.AddCommand(mccmd.Literalf("say yes")))
		assert.NoError(t, branch.End())

		assert.NoError(t, f.AddCommand(mccmd.Literalf("say done")))
		cont := f.Current()
		assert.Len(t, cont.Commands(), 1)
		assert.NoError(t, f.End())

		//the continuation unit is terminal for a top-level function
		assert.Nil(t, cont.Continuation())
	})

	t.Run("end is idempotent", func(t *testing.T) {
		b := NewBuild()
		f := b.CreateNamespace("demo").CreateFunction("noop")

		assert.NoError(t, f.End())
		assert.NoError(t, f.End())
		assert.True(t, f.Ended())
	})

	t.Run("appending after end fails", func(t *testing.T) {
		b := NewBuild()
		f := b.CreateNamespace("demo").CreateFunction("noop")
		assert.NoError(t, f.End())

		err := f.AddCommand(mccmd.Literalf("say late"))
		assert.ErrorIs(t, err, ErrUseAfterEnd)
		assert.ErrorContains(t, err, "demo/noop")

		_, err = f.If(newCondition(b.Roots()[0]))
		assert.ErrorIs(t, err, ErrUseAfterEnd)
	})

	t.Run("ending with an open branch fails", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")

		_, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}

		err = f.End()
		assert.ErrorIs(t, err, ErrUnfinishedScope)
		assert.ErrorContains(t, err, "demo/greet/if0")
		assert.False(t, f.Ended())
	})

	t.Run("sibling branches end innermost first", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")

		first, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}
		second, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}

		err = first.End()
		assert.ErrorIs(t, err, ErrOutOfOrderEnd)

		assert.NoError(t, second.End())
		assert.NoError(t, first.End())
		assert.NoError(t, f.End())
	})

	t.Run("branches nest to arbitrary depth", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("deep")

		outer, err := f.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}
		inner, err := outer.If(newCondition(root))
		if !assert.NoError(t, err) {
			return
		}

		assert.Equal(t, []string{"demo", "deep", "if0", "if0"}, inner.Path())

		//the outer scope cannot close over the inner one
		err = outer.End()
		assert.ErrorIs(t, err, ErrUnfinishedScope)

		assert.NoError(t, inner.End())
		assert.NoError(t, outer.End())
		assert.NoError(t, f.End())

		//the inner branch rejoins inside the outer one, which rejoins f
		assert.Same(t, outer.Current(), inner.Entry().Continuation())
		assert.Same(t, f.Current(), outer.Current().Continuation())
	})

	t.Run("if-then wraps open, build and end", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("greet")

		err := f.IfThen(newCondition(root), func(branch *Function) error {
			return branch.AddCommand(mccmd.Literalf("say yes"))
		})
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, f.End())

		child, err := f.Get("if0")
		if !assert.NoError(t, err) {
			return
		}
		branch, ok := child.(*Function)
		if !assert.True(t, ok) {
			return
		}
		assert.True(t, branch.Ended())
		assert.Len(t, branch.Entry().Commands(), 1)
	})

	t.Run("while is not implemented", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("loop")

		_, err := f.While(newCondition(root))
		assert.ErrorIs(t, err, ErrNotImplemented)
	})

	t.Run("descriptions and tags land on the entry unit", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		f := root.CreateFunction("boot")
		f.Describe("runs once at pack load")
		f.Tag("minecraft:load")

		assert.Equal(t, "runs once at pack load", f.Entry().Description())
		assert.Equal(t, []any{"minecraft:load"}, f.Entry().Tags())
	})

	t.Run("declared parameters are recorded", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")

		assert.Equal(t, []string{"a", "b", "c"}, root.CreateFunction("sum3", "a", "b", "c").Params())
		assert.Empty(t, root.CreateFunction("noop").Params())
	})
}

func TestEndToEndLowering(t *testing.T) {
	b := NewBuild()
	root := b.CreateNamespace("demo")
	f := root.CreateFunction("greet")

	assert.NoError(t, f.Commentf("greet the player"))

	score := mccmd.NewScore(root.UniquePlayer("greeted"), root.UniqueObjective("state"))
	branch, err := f.If(mccmd.ScoreMatches(score, "0"))
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, branch.AddCommand(mccmd.Literalf("say hello")))
	assert.NoError(t, branch.End())
	assert.NoError(t, f.End())

	set, err := b.Functions()
	if !assert.NoError(t, err) {
		return
	}

	//one function with one conditional flattens to exactly three units
	assert.Equal(t, []string{"demo/greet", "demo/greet/if0", "demo/greet/if-continue0"}, set.Paths())

	entry, ok := set.Get("demo/greet")
	if !assert.True(t, ok) {
		return
	}
	//comment plus the two dispatch commands
	assert.Len(t, entry.Commands(), 3)

	cont, ok := set.Get("demo/greet/if-continue0")
	if !assert.True(t, ok) {
		return
	}
	branchUnit, ok := set.Get("demo/greet/if0")
	if !assert.True(t, ok) {
		return
	}
	assert.Same(t, cont, branchUnit.Continuation())
	assert.Nil(t, cont.Continuation())
}
