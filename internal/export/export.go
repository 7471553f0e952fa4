// Package export turns a finished build into a datapack on a filesystem:
// one .mcfunction file per unit, one JSON file per function tag and the
// pack.mcmeta manifest. Exports are deterministic; the only run-to-run
// difference is the build id stamped into the manifest.
package export

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/mccmd"
)

const (
	// DEFAULT_PACK_FORMAT targets the 1.20 generation of the engine.
	DEFAULT_PACK_FORMAT = 18

	DEFAULT_DESCRIPTION = "compiled with packsmith"

	FILE_PERMS = 0o644
	DIR_PERMS  = 0o755
)

var (
	ErrBadSegment = errors.New("illegal path segment")
	ErrBadTagRef  = errors.New("malformed function tag reference")

	//the engine only loads lowercase resource locations
	segmentRegexp = regexp.MustCompile(`^[a-z0-9_.-]+$`)
)

// Config controls the exported pack's manifest.
type Config struct {
	// PackFormat is the engine pack format number, DEFAULT_PACK_FORMAT
	// if zero.
	PackFormat int

	// Description is the manifest description, DEFAULT_DESCRIPTION if
	// empty. The build id is appended either way.
	Description string
}

// Export flattens b and writes the datapack onto the root of fsys.
func Export(b *core.Build, fsys billy.Filesystem, cfg Config) error {
	set, err := b.Functions()
	if err != nil {
		return fmt.Errorf("flatten: %w", err)
	}
	logger := b.Logger()

	if err := writeMeta(b, fsys, cfg); err != nil {
		return err
	}

	for _, unitPath := range set.Paths() {
		unit, _ := set.Get(unitPath)
		name, err := unitFile(unit.Path())
		if err != nil {
			return err
		}
		content, err := renderUnit(unit, b.Allocator())
		if err != nil {
			return fmt.Errorf("render %s: %w", unitPath, err)
		}
		if err := writeFile(fsys, name, []byte(content)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		logger.Debug().Str("file", name).Msg("wrote unit")
	}

	tagCount, err := exportTags(b, set, fsys)
	if err != nil {
		return err
	}

	logger.Info().
		Str("build", b.ID().String()).
		Int("units", set.Len()).
		Int("tags", tagCount).
		Msg("exported datapack")
	return nil
}

// unitFile maps a unit path onto its file under data/, validating every
// segment against the engine's resource location charset.
func unitFile(unitPath []string) (string, error) {
	if err := checkSegments(unitPath); err != nil {
		return "", err
	}
	if len(unitPath) < 2 {
		return "", fmt.Errorf("%w: unit %s sits at the tree root", mccmd.ErrNoNamespace, core.PathString(unitPath))
	}
	rest := path.Join(unitPath[1:]...)
	return path.Join("data", unitPath[0], "functions", rest+".mcfunction"), nil
}

func checkSegments(unitPath []string) error {
	for _, segment := range unitPath {
		if !segmentRegexp.MatchString(segment) {
			return fmt.Errorf("%w: %q in %s", ErrBadSegment, segment, core.PathString(unitPath))
		}
	}
	return nil
}

func writeFile(fsys billy.Filesystem, name string, data []byte) error {
	if err := fsys.MkdirAll(path.Dir(name), DIR_PERMS); err != nil {
		return err
	}
	return billyutil.WriteFile(fsys, name, data, FILE_PERMS)
}
