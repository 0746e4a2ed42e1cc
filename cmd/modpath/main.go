// cmd/modpath/main.go
//
// CLI over the path-safe script-module loader. Typical uses:
//
//	modpath -list                     enumerate loadable modules
//	modpath -module pkg.sub           load one module
//	modpath -module pkg.sub -get SYM  load and print one symbol
//	modpath -preload                  load everything under the roots
//	modpath -browse                   interactive browser
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wrybill/modpath/internal/config"
	"github.com/wrybill/modpath/internal/logging"
	"github.com/wrybill/modpath/internal/tui"
	"github.com/wrybill/modpath/loader"
)

var errUsage = errors.New("no action requested")

// main stays a thin shell around run so every error path unwinds through
// run's defers (the log file handle in particular) before the process exits.
func main() {
	if err := run(); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "modpath: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	rootFlag := flag.String("root", "", "comma-separated search roots (overrides config)")
	moduleName := flag.String("module", "", "qualified module name to load (e.g. pkg.sub)")
	symbol := flag.String("get", "", "symbol to print from the loaded module")
	listModules := flag.Bool("list", false, "list loadable modules and exit")
	preload := flag.Bool("preload", false, "load every discovered module")
	browse := flag.Bool("browse", false, "open the interactive module browser")
	flag.Parse()

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		return fmt.Errorf("resolve project dir: %w", err)
	}
	if err := config.InitModpathDir(absoluteProject); err != nil {
		return fmt.Errorf("init .modpath: %w", err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(absoluteProject)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Close()

	roots := cfg.Roots()
	if trimmed := strings.TrimSpace(*rootFlag); trimmed != "" {
		roots = nil
		for _, root := range strings.Split(trimmed, ",") {
			root = strings.TrimSpace(root)
			if root == "" {
				continue
			}
			if !filepath.IsAbs(root) {
				root = filepath.Join(absoluteProject, root)
			}
			roots = append(roots, root)
		}
	}

	ld, err := loader.New(roots,
		loader.WithExtensions(cfg.Extensions()...),
		loader.WithInitFile(cfg.InitFile()),
		loader.WithDiag(logger),
	)
	if err != nil {
		return fmt.Errorf("build loader: %w", err)
	}
	// Bundled builds keep standard resolution; Install declines for them.
	loader.Install(ld)

	switch {
	case *listModules:
		names, err := ld.Discover()
		if err != nil {
			return fmt.Errorf("discover: %w", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}

	case *preload:
		if err := ld.Preload(context.Background()); err != nil {
			return fmt.Errorf("preload: %w", err)
		}
		fmt.Printf("loaded %d modules\n", ld.Registry().Len())

	case *browse:
		if err := tui.Run(ld); err != nil {
			return fmt.Errorf("browse: %w", err)
		}

	case strings.TrimSpace(*moduleName) != "":
		mod, err := ld.Load(loader.Name(*moduleName))
		if err != nil {
			return fmt.Errorf("load %s: %w", *moduleName, err)
		}
		if strings.TrimSpace(*symbol) != "" {
			value, err := mod.Get(*symbol)
			if err != nil {
				return fmt.Errorf("get %s: %w", *symbol, err)
			}
			fmt.Println(value)
			return nil
		}
		fmt.Printf("%s (%s)\n", mod.Name(), mod.File())
		for _, name := range mod.Exported() {
			fmt.Printf("  %s\n", name)
		}

	default:
		return errUsage
	}
	return nil
}
