package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packsmith/packsmith/internal/mccmd"
)

func TestTemplateMemoization(t *testing.T) {

	newCounterTemplate := func(root *Namespace, built *int) *Template {
		return root.CreateTemplate("setter", func(tpl *Template, args Args) (*Function, error) {
			*built++
			fn := tpl.CreateFunction(fmt.Sprintf("set_%v", args["value"]))
			if err := fn.AddCommand(mccmd.Literalf("say set to %s", args["value"].(int))); err != nil {
				return nil, err
			}
			return fn, nil
		})
	}

	t.Run("same arguments build once", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		built := 0
		tpl := newCounterTemplate(root, &built)

		first, err := tpl.Instantiate(Args{"value": 1})
		if !assert.NoError(t, err) {
			return
		}
		second, err := tpl.Instantiate(Args{"value": 1})
		if !assert.NoError(t, err) {
			return
		}

		assert.Same(t, first, second)
		assert.Equal(t, 1, built)
		assert.Equal(t, 1, tpl.Compiled())
	})

	t.Run("argument order does not matter", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		built := 0
		tpl := newCounterTemplate(root, &built)

		first, err := tpl.Instantiate(Args{"value": 1, "scale": 2})
		if !assert.NoError(t, err) {
			return
		}
		second, err := tpl.Instantiate(Args{"scale": 2, "value": 1})
		if !assert.NoError(t, err) {
			return
		}

		assert.Same(t, first, second)
		assert.Equal(t, 1, built)
	})

	t.Run("different arguments build different functions", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		built := 0
		tpl := newCounterTemplate(root, &built)

		first, err := tpl.Instantiate(Args{"value": 1})
		if !assert.NoError(t, err) {
			return
		}
		second, err := tpl.Instantiate(Args{"value": 2})
		if !assert.NoError(t, err) {
			return
		}

		assert.NotSame(t, first, second)
		assert.Equal(t, 2, built)
		assert.Equal(t, 2, tpl.Compiled())
	})

	t.Run("instantiated functions live under the template", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		built := 0
		tpl := newCounterTemplate(root, &built)

		fn, err := tpl.Instantiate(Args{"value": 7})
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, []string{"demo", "setter", "set_7"}, fn.Path())
		assert.True(t, fn.Ended())
	})

	t.Run("detached build results are adopted", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		tpl := root.CreateTemplate("adopt", func(tpl *Template, args Args) (*Function, error) {
			return NewFunction("made"), nil
		})

		fn, err := tpl.Instantiate(Args{})
		if !assert.NoError(t, err) {
			return
		}
		assert.Same(t, &tpl.Namespace, fn.Parent())
		assert.Equal(t, "demo/adopt/made", PathString(fn.Path()))
	})

	t.Run("builder errors surface with the template path", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		tpl := root.CreateTemplate("broken", func(tpl *Template, args Args) (*Function, error) {
			return nil, fmt.Errorf("no such variant")
		})

		_, err := tpl.Instantiate(Args{"value": 1})
		assert.ErrorContains(t, err, "demo/broken")
		assert.ErrorContains(t, err, "no such variant")
	})

	t.Run("instantiations flatten like hand-written functions", func(t *testing.T) {
		b := NewBuild()
		root := b.CreateNamespace("demo")
		built := 0
		tpl := newCounterTemplate(root, &built)

		_, err := tpl.Instantiate(Args{"value": 3})
		if !assert.NoError(t, err) {
			return
		}

		set, err := b.Functions()
		if !assert.NoError(t, err) {
			return
		}
		_, ok := set.Get("demo/setter/set_3")
		assert.True(t, ok)
	})
}
