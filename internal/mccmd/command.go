// Package mccmd provides the command vocabulary the compiler arranges into
// units: literal commands with late-bound arguments, comments, composed
// commands, function calls and boolean conditions. A command renders to one
// target-machine instruction line; embedded symbols keep their identity
// during the build and receive their final text only when resolved through a
// flatname.Resolver at export time.
package mccmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/packsmith/packsmith/internal/flatname"
)

var (
	ErrBadPlaceholders = errors.New("placeholder count does not match argument count")
	ErrBadArgument     = errors.New("unsupported command argument")
	ErrNoNamespace     = errors.New("resource path has no namespace")
)

// Command is one target-machine instruction, rendered at export time.
type Command interface {
	Resolve(r flatname.Resolver) (string, error)
}

// Callable is anything a function call command can target: a unit or a
// function tag. Tags render with a leading '#'.
type Callable interface {
	Path() []string
	IsTag() bool
}

// Location renders a canonical path as a resource location, "ns:rest/of/path".
// The first path element is the namespace; a path that consists of a single
// element cannot be addressed by the engine.
func Location(path []string) (string, error) {
	if len(path) < 2 {
		return "", fmt.Errorf("%w: %q", ErrNoNamespace, strings.Join(path, "/"))
	}
	return path[0] + ":" + strings.Join(path[1:], "/"), nil
}

// A LiteralCommand is a raw instruction with %s placeholders filled in at
// resolution time. Only the %s verb is supported; arguments may be strings,
// ints, symbols, scores, callables or PathOf values.
type LiteralCommand struct {
	format string
	args   []any
}

func Literalf(format string, args ...any) *LiteralCommand {
	return &LiteralCommand{format: format, args: args}
}

func (c *LiteralCommand) Resolve(r flatname.Resolver) (string, error) {
	return resolveFormat(c.format, c.args, r)
}

// A Comment renders as a '#' line in the emitted unit.
type Comment struct {
	format string
	args   []any
}

func Commentf(format string, args ...any) *Comment {
	return &Comment{format: format, args: args}
}

func (c *Comment) Resolve(r flatname.Resolver) (string, error) {
	text, err := resolveFormat(c.format, c.args, r)
	if err != nil {
		return "", err
	}
	return "# " + text, nil
}

// A ComposedCommand joins sub-commands with single spaces into one line,
// typically an execute prefix followed by a function call.
type ComposedCommand struct {
	parts []Command
}

func Compose(parts ...Command) *ComposedCommand {
	return &ComposedCommand{parts: parts}
}

func (c *ComposedCommand) Resolve(r flatname.Resolver) (string, error) {
	rendered := make([]string, 0, len(c.parts))
	for _, part := range c.parts {
		text, err := part.Resolve(r)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, text)
	}
	return strings.Join(rendered, " "), nil
}

// A FunctionCall jumps unconditionally to another unit or runs every member
// of a function tag.
type FunctionCall struct {
	target Callable
}

func Call(target Callable) *FunctionCall {
	return &FunctionCall{target: target}
}

func (c *FunctionCall) Target() Callable {
	return c.target
}

func (c *FunctionCall) Resolve(r flatname.Resolver) (string, error) {
	loc, err := Location(c.target.Path())
	if err != nil {
		return "", err
	}
	if c.target.IsTag() {
		loc = "#" + loc
	}
	return "function " + loc, nil
}

// PathOf defers rendering of a node's canonical path, for use as a literal
// or comment argument. The path is read at resolution time, after the tree
// is complete.
func PathOf(node interface{ Path() []string }) any {
	return pathArg{node}
}

type pathArg struct {
	node interface{ Path() []string }
}

func resolveFormat(format string, args []any, r flatname.Resolver) (string, error) {
	if strings.Count(format, "%s") != len(args) {
		return "", fmt.Errorf("%w: %q with %d argument(s)", ErrBadPlaceholders, format, len(args))
	}
	if len(args) == 0 {
		return format, nil
	}

	resolved := make([]any, len(args))
	for i, arg := range args {
		text, err := resolveArg(arg, r)
		if err != nil {
			return "", err
		}
		resolved[i] = text
	}
	return fmt.Sprintf(format, resolved...), nil
}

func resolveArg(arg any, r flatname.Resolver) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case Int:
		return strconv.FormatInt(int64(v), 10), nil
	case *flatname.Symbol:
		return r.NameOf(v), nil
	case Score:
		return v.resolve(r)
	case pathArg:
		return strings.Join(v.node.Path(), "/"), nil
	case Callable:
		loc, err := Location(v.Path())
		if err != nil {
			return "", err
		}
		if v.IsTag() {
			loc = "#" + loc
		}
		return loc, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrBadArgument, arg)
	}
}
