package export

import (
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/exp/slices"

	"github.com/go-git/go-billy/v5"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/mccmd"
)

// tagFile is the engine's function tag schema.
type tagFile struct {
	Values []string `json:"values"`
}

type tagEntry struct {
	path    []string
	members []string
}

// exportTags aggregates every tag registration in the build into JSON tag
// files. Tags declared in the tree export even when nothing registered
// with them, so calling an empty tag stays valid.
func exportTags(b *core.Build, set *core.FunctionSet, fsys billy.Filesystem) (int, error) {
	entries := map[string]*tagEntry{}

	ensure := func(tagPath []string) (*tagEntry, error) {
		if err := checkSegments(tagPath); err != nil {
			return nil, err
		}
		location, err := mccmd.Location(tagPath)
		if err != nil {
			return nil, fmt.Errorf("%w: tag %s", ErrBadTagRef, core.PathString(tagPath))
		}
		entry, ok := entries[location]
		if !ok {
			entry = &tagEntry{path: tagPath}
			entries[location] = entry
		}
		return entry, nil
	}

	for _, root := range b.Roots() {
		if err := declareTags(root, ensure); err != nil {
			return 0, err
		}
	}

	for _, unitPath := range set.Paths() {
		unit, _ := set.Get(unitPath)
		member, err := mccmd.Location(unit.Path())
		if err != nil {
			return 0, err
		}
		for _, ref := range unit.Tags() {
			tagPath, err := resolveTagRef(ref)
			if err != nil {
				return 0, fmt.Errorf("unit %s: %w", unitPath, err)
			}
			entry, err := ensure(tagPath)
			if err != nil {
				return 0, err
			}
			entry.members = append(entry.members, member)
		}
	}

	locations := make([]string, 0, len(entries))
	for location := range entries {
		locations = append(locations, location)
	}
	slices.Sort(locations)

	logger := b.Logger()
	for _, location := range locations {
		entry := entries[location]
		slices.Sort(entry.members)
		entry.members = slices.Compact(entry.members)

		file := tagFile{Values: entry.members}
		if file.Values == nil {
			file.Values = []string{}
		}
		raw, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return 0, err
		}
		name := path.Join("data", entry.path[0], "tags", "functions", path.Join(entry.path[1:]...)+".json")
		if err := writeFile(fsys, name, append(raw, '\n')); err != nil {
			return 0, fmt.Errorf("write %s: %w", name, err)
		}
		logger.Debug().Str("file", name).Int("members", len(entry.members)).Msg("wrote function tag")
	}
	return len(entries), nil
}

// declareTags walks the tree and registers every function tag node, so
// empty tags still produce files.
func declareTags(ns *core.Namespace, ensure func([]string) (*tagEntry, error)) error {
	for _, child := range ns.Children() {
		switch node := child.(type) {
		case *core.FunctionTag:
			if _, err := ensure(node.Path()); err != nil {
				return err
			}
		case *core.Namespace:
			if err := declareTags(node, ensure); err != nil {
				return err
			}
		case *core.Function:
			if err := declareTags(&node.Namespace, ensure); err != nil {
				return err
			}
		case *core.Template:
			if err := declareTags(&node.Namespace, ensure); err != nil {
				return err
			}
		case *core.Class:
			if err := declareTags(&node.Namespace, ensure); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTagRef turns one registration into the tag's tree path. String
// registrations are engine locations like "minecraft:load"; tree tags
// carry their own path.
func resolveTagRef(ref any) ([]string, error) {
	switch tag := ref.(type) {
	case *core.FunctionTag:
		return tag.Path(), nil
	case string:
		namespace, rest, found := strings.Cut(tag, ":")
		if !found || namespace == "" || rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadTagRef, tag)
		}
		return append([]string{namespace}, strings.Split(rest, "/")...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported reference %T", ErrBadTagRef, ref)
	}
}
