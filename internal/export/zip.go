package export

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/klauspost/compress/zip"
	"golang.org/x/exp/slices"

	"github.com/packsmith/packsmith/internal/core"
)

// ExportZip writes the datapack as a zip archive, the form packs are
// installed and distributed in. The archive layout matches a directory
// export, with pack.mcmeta at the archive root.
func ExportZip(b *core.Build, w io.Writer, cfg Config) error {
	staging := memfs.New()
	if err := Export(b, staging, cfg); err != nil {
		return err
	}

	archive := zip.NewWriter(w)
	if err := zipDir(archive, staging, "."); err != nil {
		archive.Close()
		return err
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}

func zipDir(archive *zip.Writer, fsys billy.Filesystem, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	//archive entry order is part of the deterministic output
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})
	for _, entry := range entries {
		name := path.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := zipDir(archive, fsys, name); err != nil {
				return err
			}
			continue
		}
		if err := zipFile(archive, fsys, name); err != nil {
			return err
		}
	}
	return nil
}

func zipFile(archive *zip.Writer, fsys billy.Filesystem, name string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := archive.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}
