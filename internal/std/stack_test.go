package std

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packsmith/packsmith/internal/core"
)

func TestStacks(t *testing.T) {

	t.Run("push stores the argument register on a fresh marker", func(t *testing.T) {
		b := core.NewBuild()
		lib, err := Install(b)
		if !assert.NoError(t, err) {
			return
		}

		push, err := lib.StackPush(0)
		if !assert.NoError(t, err) {
			return
		}
		lines := resolveAll(t, b, push.Entry())
		assert.Equal(t, []string{
			`summon marker ~ ~ ~ {Tags:["marker","stack0","stack0.new"]}`,
			"scoreboard players operation @e[tag=stack0.new] idx = #sp0 std",
			"scoreboard players operation @e[tag=stack0.new] val = #arg std",
			"scoreboard players add #sp0 std 1",
			"tag @e[tag=stack0.new] remove stack0.new",
		}, lines)
	})

	t.Run("pop retrieves and kills the top marker", func(t *testing.T) {
		b := core.NewBuild()
		lib, err := Install(b)
		if !assert.NoError(t, err) {
			return
		}

		pop, err := lib.StackPop(0)
		if !assert.NoError(t, err) {
			return
		}
		lines := resolveAll(t, b, pop.Entry())
		assert.Equal(t, []string{
			"scoreboard players remove #sp0 std 1",
			"execute as @e[tag=stack0] if score @s idx = #sp0 std run scoreboard players operation #ret std = @s val",
			"execute as @e[tag=stack0] if score @s idx = #sp0 std run kill @s",
		}, lines)
	})

	t.Run("routines are generated once per stack", func(t *testing.T) {
		b := core.NewBuild()
		lib, err := Install(b)
		if !assert.NoError(t, err) {
			return
		}

		first, err := lib.StackPush(3)
		if !assert.NoError(t, err) {
			return
		}
		again, err := lib.StackPush(3)
		if !assert.NoError(t, err) {
			return
		}
		other, err := lib.StackPush(4)
		if !assert.NoError(t, err) {
			return
		}

		assert.Same(t, first, again)
		assert.NotSame(t, first, other)
	})

	t.Run("push and pop of one stack share its state", func(t *testing.T) {
		b := core.NewBuild()
		lib, err := Install(b)
		if !assert.NoError(t, err) {
			return
		}

		_, err = lib.StackPush(2)
		if !assert.NoError(t, err) {
			return
		}
		_, err = lib.StackPop(2)
		if !assert.NoError(t, err) {
			return
		}

		//one state per stack regardless of which routine minted it
		assert.Same(t, lib.stack(2), lib.stacks[2])
		assert.Len(t, lib.stacks, 2) //the argument stack plus stack 2
	})

	t.Run("the argument stack exists from install", func(t *testing.T) {
		b := core.NewBuild()
		lib, err := Install(b)
		if !assert.NoError(t, err) {
			return
		}
		assert.Contains(t, lib.stacks, 0)
	})
}
