package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassResolution(t *testing.T) {

	t.Run("own members shadow inherited ones", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("game")
		base := root.CreateClass("mob")
		base.CreateFunction("hurt")
		zombie := root.CreateClass("zombie", base)
		own := zombie.CreateFunction("hurt")

		got, err := zombie.Get("hurt")
		if !assert.NoError(t, err) {
			return
		}
		assert.Same(t, own, got)
	})

	t.Run("missing members resolve through parents", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("game")
		base := root.CreateClass("mob")
		hurt := base.CreateFunction("hurt")
		zombie := root.CreateClass("zombie", base)

		got, err := zombie.Get("hurt")
		if !assert.NoError(t, err) {
			return
		}
		assert.Same(t, hurt, got)

		//the inherited member keeps its defining path
		fn, ok := got.(*Function)
		if !assert.True(t, ok) {
			return
		}
		assert.Equal(t, "game/mob/hurt", PathString(fn.Path()))
	})

	t.Run("resolution walks the ancestry", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("game")
		base := root.CreateClass("mob")
		hurt := base.CreateFunction("hurt")
		zombie := root.CreateClass("zombie", base)
		baby := root.CreateClass("baby_zombie", zombie)

		got, err := baby.Get("hurt")
		if !assert.NoError(t, err) {
			return
		}
		assert.Same(t, hurt, got)
	})

	t.Run("earlier parents win", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("game")
		walker := root.CreateClass("walker")
		walk := walker.CreateFunction("move")
		swimmer := root.CreateClass("swimmer")
		swimmer.CreateFunction("move")
		drowned := root.CreateClass("drowned", walker, swimmer)

		got, err := drowned.Get("move")
		if !assert.NoError(t, err) {
			return
		}
		assert.Same(t, walk, got)
	})

	t.Run("a miss everywhere fails", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("game")
		base := root.CreateClass("mob")
		zombie := root.CreateClass("zombie", base)

		_, err := zombie.Get("fly")
		assert.ErrorIs(t, err, ErrUnknownSymbol)
		assert.ErrorContains(t, err, "game/zombie")
	})
}
