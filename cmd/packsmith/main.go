package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/goccy/go-yaml"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/export"
)

const (
	VERSION = "0.3.0"

	DEFAULT_OUTPUT_DIR = "pack"

	HELP = `packsmith compiles function graphs into flat datapacks.

usage:
	packsmith build [-out DIR] [-config FILE] [-format N] [-desc TEXT] [-zip] [-v]
		compile the showcase program and write the datapack to DIR,
		with -zip as a single installable archive

	packsmith list [-v]
		compile the showcase program and list its units

	packsmith version
		print the version

	packsmith help
		print this help
`
)

func main() {
	os.Exit(_main(os.Args, os.Stdout, os.Stderr))
}

func _main(args []string, outW io.Writer, errW io.Writer) int {
	if len(args) < 2 {
		fmt.Fprint(errW, HELP)
		return 2
	}

	switch args[1] {
	case "build":
		return doBuild(args[2:], outW, errW)
	case "list":
		return doList(args[2:], outW, errW)
	case "version":
		fmt.Fprintln(outW, VERSION)
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(outW, HELP)
		return 0
	default:
		fmt.Fprintf(errW, "unknown command %q\n\n", args[1])
		fmt.Fprint(errW, HELP)
		return 2
	}
}

// buildConfig is the YAML shape of -config files; flags set explicitly on
// the command line win over it.
type buildConfig struct {
	Output      string `yaml:"output"`
	Description string `yaml:"description"`
	PackFormat  int    `yaml:"pack_format"`
}

func doBuild(args []string, outW io.Writer, errW io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(errW)
	outDir := fs.String("out", "", "output directory")
	configPath := fs.String("config", "", "YAML build configuration")
	packFormat := fs.Int("format", 0, "pack format number")
	description := fs.String("desc", "", "pack description")
	zipOut := fs.Bool("zip", false, "write a zip archive instead of a directory")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var cfg buildConfig
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(errW, "read config:", err)
			return 1
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintln(errW, "parse config:", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output = *outDir
		case "format":
			cfg.PackFormat = *packFormat
		case "desc":
			cfg.Description = *description
		}
	})
	if cfg.Output == "" {
		cfg.Output = DEFAULT_OUTPUT_DIR
	}

	b := core.NewBuild()
	b.SetLogger(newLogger(errW, *verbose))

	if err := buildShowcase(b); err != nil {
		fmt.Fprintln(errW, "compile:", err)
		return 1
	}

	exportCfg := export.Config{
		PackFormat:  cfg.PackFormat,
		Description: cfg.Description,
	}
	target := cfg.Output
	if *zipOut {
		if filepath.Ext(target) != ".zip" {
			target += ".zip"
		}
		if err := exportArchive(b, target, exportCfg); err != nil {
			fmt.Fprintln(errW, "export:", err)
			return 1
		}
	} else if err := export.Export(b, osfs.New(target), exportCfg); err != nil {
		fmt.Fprintln(errW, "export:", err)
		return 1
	}

	set, err := b.Functions()
	if err != nil {
		fmt.Fprintln(errW, err)
		return 1
	}
	term := termenv.NewOutput(outW)
	fmt.Fprintln(outW, term.String(fmt.Sprintf("exported %d units to %s", set.Len(), target)).
		Foreground(termenv.ANSIGreen).String())
	return 0
}

func exportArchive(b *core.Build, target string, cfg export.Config) error {
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if err := export.ExportZip(b, f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func doList(args []string, outW io.Writer, errW io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(errW)
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	b := core.NewBuild()
	b.SetLogger(newLogger(errW, *verbose))

	if err := buildShowcase(b); err != nil {
		fmt.Fprintln(errW, "compile:", err)
		return 1
	}
	set, err := b.Functions()
	if err != nil {
		fmt.Fprintln(errW, err)
		return 1
	}

	term := termenv.NewOutput(outW)
	for _, path := range set.Paths() {
		unit, _ := set.Get(path)
		commands := len(unit.Commands())
		if unit.Continuation() != nil {
			commands++
		}
		fmt.Fprintf(outW, "%s  %s\n",
			term.String(path).Foreground(termenv.ANSICyan).String(),
			term.String(fmt.Sprintf("(%d commands)", commands)).Faint().String())
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
