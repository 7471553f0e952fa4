package core

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/packsmith/packsmith/internal/mccmd"
)

func TestPathProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a path is the parent path plus the name", prop.ForAll(
		func(rootName string, segments []string) bool {
			b := NewBuild()
			ns := b.CreateNamespace(rootName)
			expected := rootName
			for _, segment := range segments {
				ns = ns.CreateNamespace(segment)
				expected += "/" + segment
				if PathString(ns.Path()) != expected {
					return false
				}
			}
			unit := ns.CreateMCFunction("unit")
			return PathString(unit.Path()) == expected+"/unit"
		},
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("flatten keys are the unit paths", prop.ForAll(
		func(segments []string, splits int) bool {
			b := NewBuild()
			ns := b.CreateNamespace("app")
			for _, segment := range segments {
				ns = ns.CreateNamespace(segment)
			}
			f := ns.CreateFunction("run")
			score := mccmd.NewScore(ns.UniquePlayer("p"), ns.UniqueObjective("o"))
			for i := 0; i < splits; i++ {
				branch, err := f.If(mccmd.ScoreMatches(score, "1.."))
				if err != nil || branch.End() != nil {
					return false
				}
			}
			if f.End() != nil {
				return false
			}

			set, err := b.Functions()
			if err != nil {
				return false
			}
			//entry plus a branch and a continuation unit per split
			if set.Len() != 1+2*splits {
				return false
			}
			prefix := PathString(f.Path())
			for _, path := range set.Paths() {
				unit, ok := set.Get(path)
				if !ok || PathString(unit.Path()) != path {
					return false
				}
				if !strings.HasPrefix(path, prefix) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(2, gen.Identifier()),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
