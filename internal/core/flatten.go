package core

import "fmt"

// FunctionSet is the flattened view of one build: every unit keyed by its
// canonical path, in first-insertion order. Templates and classes
// disappear here; only their generated units remain.
type FunctionSet struct {
	order  []string
	byPath map[string]*MCFunction
}

func newFunctionSet() *FunctionSet {
	return &FunctionSet{byPath: map[string]*MCFunction{}}
}

func (s *FunctionSet) put(path string, fn *MCFunction) {
	if _, seen := s.byPath[path]; !seen {
		s.order = append(s.order, path)
	}
	s.byPath[path] = fn
}

// Len returns the number of units in the set.
func (s *FunctionSet) Len() int {
	return len(s.order)
}

// Paths returns every unit path in first-insertion order.
func (s *FunctionSet) Paths() []string {
	return s.order
}

// Get returns the unit at path.
func (s *FunctionSet) Get(path string) (*MCFunction, bool) {
	fn, ok := s.byPath[path]
	return fn, ok
}

func collectUnits(set *FunctionSet, ns *Namespace) error {
	for _, child := range ns.Children() {
		switch node := child.(type) {
		case *MCFunction:
			set.put(PathString(node.Path()), node)
		case *Function:
			if !node.Ended() {
				return fmt.Errorf("%w: %s", ErrUnfinishedScope, PathString(node.Path()))
			}
			set.put(PathString(node.Entry().Path()), node.Entry())
			if err := collectUnits(set, &node.Namespace); err != nil {
				return err
			}
		case *Template:
			if err := collectUnits(set, &node.Namespace); err != nil {
				return err
			}
		case *Class:
			if err := collectUnits(set, &node.Namespace); err != nil {
				return err
			}
		case *Namespace:
			if err := collectUnits(set, node); err != nil {
				return err
			}
		case *FunctionTag:
			//aggregated by the export tag pass, not a unit
		default:
			return fmt.Errorf("cannot flatten %T at %s", node, PathString(node.Path()))
		}
	}
	return nil
}
