package std

import (
	"fmt"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/mccmd"
)

// Record is a named bundle of score fields with generated accessors. Each
// field is one variable on the shared objective; get_<field> returns it
// through the return register and set_<field> stores the argument
// register into it. Records inherit: accessors a record does not define
// itself resolve through its parents' classes.
type Record struct {
	// Class holds the accessors and resolves inherited ones.
	Class *core.Class

	fields map[string]mccmd.Score
}

// DefineRecord generates a record named name under parent. fields are the
// record's own score fields; parents contribute their accessors to
// lookup. The generated "new" routine zeroes the record's own fields and
// chains into each parent's.
func (l *Lib) DefineRecord(parent *core.Namespace, name string, fields []string, parents ...*Record) (*Record, error) {
	bases := make([]*core.Class, len(parents))
	for i, p := range parents {
		bases[i] = p.Class
	}
	rec := &Record{
		Class:  parent.CreateClass(name, bases...),
		fields: map[string]mccmd.Score{},
	}

	init := rec.Class.CreateFunction("new")
	init.Describe(fmt.Sprintf("resets a %s to its zero state", name))

	for _, field := range fields {
		score := l.Score(name + "." + field)
		rec.fields[field] = score

		getter := rec.Class.CreateFunction("get_" + field)
		if err := getter.Return(score); err != nil {
			return nil, err
		}
		if err := getter.End(); err != nil {
			return nil, err
		}

		setter := rec.Class.CreateFunction("set_"+field, field)
		if err := setter.AddCommand(mccmd.SetScore(score, l.Arg)); err != nil {
			return nil, err
		}
		if err := setter.End(); err != nil {
			return nil, err
		}

		if err := init.AddCommand(mccmd.SetScore(score, mccmd.Int(0))); err != nil {
			return nil, err
		}
	}

	for _, p := range parents {
		parentInit, err := p.Init()
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", name, err)
		}
		if err := init.Call(parentInit); err != nil {
			return nil, err
		}
	}
	if err := init.End(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Field returns the score behind one of the record's own fields.
func (r *Record) Field(name string) (mccmd.Score, bool) {
	score, ok := r.fields[name]
	return score, ok
}

// Getter resolves get_<field>, inherited or own.
func (r *Record) Getter(field string) (*core.Function, error) {
	return r.accessor("get_" + field)
}

// Setter resolves set_<field>, inherited or own.
func (r *Record) Setter(field string) (*core.Function, error) {
	return r.accessor("set_" + field)
}

// Init resolves the record's "new" routine.
func (r *Record) Init() (*core.Function, error) {
	return r.accessor("new")
}

func (r *Record) accessor(name string) (*core.Function, error) {
	got, err := r.Class.Get(name)
	if err != nil {
		return nil, err
	}
	fn, ok := got.(*core.Function)
	if !ok {
		return nil, fmt.Errorf("%s is not callable", core.PathString(got.Path()))
	}
	return fn, nil
}
