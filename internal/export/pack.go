package export

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/go-git/go-billy/v5"

	"github.com/packsmith/packsmith/internal/core"
)

type packMeta struct {
	Pack packMetaInner `json:"pack"`
}

type packMetaInner struct {
	PackFormat  int    `json:"pack_format"`
	Description string `json:"description"`
}

// writeMeta emits pack.mcmeta. The build id goes into the description so
// an installed pack can be traced back to the compilation that produced
// it.
func writeMeta(b *core.Build, fsys billy.Filesystem, cfg Config) error {
	format := cfg.PackFormat
	if format == 0 {
		format = DEFAULT_PACK_FORMAT
	}
	description := cfg.Description
	if description == "" {
		description = DEFAULT_DESCRIPTION
	}

	meta := packMeta{
		Pack: packMetaInner{
			PackFormat:  format,
			Description: fmt.Sprintf("%s (build %s)", description, b.ID()),
		},
	}
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(fsys, "pack.mcmeta", append(raw, '\n')); err != nil {
		return fmt.Errorf("write pack.mcmeta: %w", err)
	}
	return nil
}
