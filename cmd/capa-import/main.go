package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-capa/cmd/internal/bootstrap"
	problemscmd "github.com/goliatone/go-capa/internal/commands/problems"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("capa import: %v", err)
	}
}

func runImport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capa-import", flag.ContinueOnError)
	root := fs.String("root", ".", "Directory the problem paths are relative to")
	file := fs.String("file", "", "Single markdown problem file to import")
	dir := fs.String("dir", "", "Directory of markdown problem files to import")
	pattern := fs.String("pattern", "", "Glob applied to file names when importing a directory")
	dryRun := fs.Bool("dry-run", false, "Convert files without storing them")
	driver := fs.String("driver", "sqlite", "Database driver (sqlite or postgres)")
	dsn := fs.String("dsn", "", "Database DSN; empty keeps problems in memory")
	cache := fs.Bool("cache", false, "Enable the repository cache")
	noValidate := fs.Bool("no-validate", false, "Skip front matter schema validation")
	asJSON := fs.Bool("json", false, "Print the import summary as JSON")
	logProvider := fs.String("log", "console", "Logger provider (console or gologger)")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*file) == "" && strings.TrimSpace(*dir) == "" {
		return errors.New("either -file or -dir is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		Driver:         *driver,
		DSN:            *dsn,
		Cache:          *cache,
		ValidateSchema: !*noValidate,
		LogProvider:    *logProvider,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handlers, err := module.Commands(os.DirFS(*root))
	if err != nil {
		return err
	}

	var result problemscmd.ImportResult
	cmd := problemscmd.ImportFileCommand{
		Path:           filepath.ToSlash(strings.TrimSpace(*file)),
		Directory:      filepath.ToSlash(strings.TrimSpace(*dir)),
		Pattern:        *pattern,
		DryRun:         *dryRun,
		ResultCallback: func(r problemscmd.ImportResult) { result = r },
	}
	if err := handlers.Import.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	verb := "imported"
	if result.DryRun {
		verb = "converted"
	}
	fmt.Fprintf(stdout, "%s %d problem(s)\n", verb, len(result.URLNames))
	for _, name := range result.Degraded {
		for _, diag := range result.Reports[name].Diagnostics {
			fmt.Fprintf(stdout, "warning: %s segment %d: %s\n", name, diag.Segment, diag.Kind)
		}
	}
	return nil
}
