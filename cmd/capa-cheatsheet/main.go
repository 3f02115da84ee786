package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-capa/internal/cheatsheet"
)

func main() {
	if err := runCheatsheet(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("capa cheatsheet: %v", err)
	}
}

func runCheatsheet(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capa-cheatsheet", flag.ContinueOnError)
	asHTML := fs.Bool("html", false, "Render the cheatsheet as HTML")
	examples := fs.Bool("examples", false, "List the example snippets with the response type they produce")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *examples:
		for _, example := range cheatsheet.Examples() {
			if _, err := fmt.Fprintf(stdout, "# %s\n%s\n", example.Response, example.Markdown); err != nil {
				return err
			}
		}
		return nil
	case *asHTML:
		html, err := cheatsheet.HTML()
		if err != nil {
			return fmt.Errorf("render cheatsheet: %w", err)
		}
		_, err = io.WriteString(stdout, html)
		return err
	default:
		_, err := io.WriteString(stdout, cheatsheet.Markdown())
		return err
	}
}
