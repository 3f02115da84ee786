package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-capa/cmd/internal/bootstrap"
	problemscmd "github.com/goliatone/go-capa/internal/commands/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

func main() {
	if err := runConvert(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("capa convert: %v", err)
	}
}

func runConvert(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("capa-convert", flag.ContinueOnError)
	input := fs.String("in", "-", "Markdown file to convert, - for stdin")
	report := fs.Bool("report", false, "Print a JSON conversion report instead of the XML")
	label := fs.String("explanation-label", "", "Text written above explanations")
	logProvider := fs.String("log", "", "Logger provider (console or gologger); empty disables logging")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	markdown, err := readInput(*input, stdin)
	if err != nil {
		return err
	}

	module, err := bootstrap.BuildModule(bootstrap.Options{
		ExplanationLabel: *label,
		LogProvider:      *logProvider,
		LogLevel:         *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handlers, err := module.Commands(nil)
	if err != nil {
		return err
	}

	var result interfaces.ConversionReport
	cmd := problemscmd.ConvertMarkdownCommand{
		Markdown:       markdown,
		ResultCallback: func(r interfaces.ConversionReport) { result = r },
	}
	if err := handlers.Convert.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute convert command: %w", err)
	}

	if *report {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	_, err = fmt.Fprintln(stdout, result.XML)
	return err
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
