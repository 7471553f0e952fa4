package core

import "fmt"

// Class is a namespace with inheritance-style lookup. Symbol resolution
// falls back through the declared parents, so a class exposes everything
// its ancestry defines without copying it.
type Class struct {
	Namespace
	parents []*Class
}

func newClass(name string, parents []*Class) *Class {
	return &Class{
		Namespace: *newNamespace(name),
		parents:   parents,
	}
}

// Parents returns the resolution parents in declaration order.
func (c *Class) Parents() []*Class {
	return c.parents
}

// Get resolves name on the class itself first, then through each parent
// left to right, taking the first hit. Parents resolve the same way, so
// lookup walks the ancestry depth-first.
func (c *Class) Get(name string) (Pathable, error) {
	if child, err := c.Namespace.Get(name); err == nil {
		return child, nil
	}
	for _, parent := range c.parents {
		if child, err := parent.Get(name); err == nil {
			return child, nil
		}
	}
	return nil, fmt.Errorf("%w: no %q in class %s or its parents", ErrUnknownSymbol, name, PathString(c.Path()))
}
