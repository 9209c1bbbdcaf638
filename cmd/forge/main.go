package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lumenarts/forge/pkg/export"
	"github.com/lumenarts/forge/pkg/importer"
	"github.com/lumenarts/forge/pkg/renderers/tui"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "fill":
		err = runFill(ctx, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "forge: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]

Commands:
  list     list the templates in a directory
  import   build a template from an OpenAPI operation
  fill     complete a template interactively and export the entry
`, filepath.Base(os.Args[0]))
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dir := fs.String("dir", "templates", "directory of template files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	templates, err := importer.LoadFS(os.DirFS(*dir))
	if err != nil {
		return err
	}
	for _, t := range templates {
		fmt.Printf("%-24s %-32s %d fields\n", t.ID, t.Title, len(t.Fields))
	}
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "OpenAPI document path")
	operation := fs.String("operation", "", "operation ID to convert")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" || *operation == "" {
		return fmt.Errorf("import needs -source and -operation")
	}

	raw, err := os.ReadFile(*source)
	if err != nil {
		return err
	}
	tmpl, err := importer.FromOpenAPI(ctx, raw, *operation)
	if err != nil {
		return err
	}

	doc, err := yaml.Marshal(tmpl)
	if err != nil {
		return err
	}
	return writeOutput(*output, doc)
}

func runFill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	path := fs.String("template", "", "template file to fill")
	format := fs.String("format", "text", "export format: text, csv or html")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("fill needs -template")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		return err
	}
	tmpl, err := importer.Parse(raw, *path)
	if err != nil {
		return err
	}

	filler := tui.New()
	entry, err := filler.Fill(ctx, tmpl)
	if err != nil {
		return err
	}

	exporter, err := exporterFor(*format)
	if err != nil {
		return err
	}
	doc, err := exporter.Export(ctx, tmpl, entry)
	if err != nil {
		return err
	}
	return writeOutput(*output, doc)
}

func exporterFor(format string) (export.Exporter, error) {
	switch strings.ToLower(format) {
	case "text":
		return export.NewText(), nil
	case "csv":
		return export.NewCSV(), nil
	case "html":
		return export.NewHTML()
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
