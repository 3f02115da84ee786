package problemfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var metaSchema []byte

// ErrInvalidMeta is wrapped by every ValidationError.
var ErrInvalidMeta = errors.New("problemfile: front matter invalid")

// Issue is a single front matter validation failure.
type Issue struct {
	Location string
	Message  string
}

// ValidationError reports the front matter issues of one file.
type ValidationError struct {
	Path   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMeta
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func metaValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("problemfile.json", bytes.NewReader(metaSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("problemfile.json")
	})
	return compiledSchema, schemaErr
}

// ValidateMeta checks raw front matter values against the problem file
// schema.
func ValidateMeta(path string, raw map[string]any) error {
	schema, err := metaValidator()
	if err != nil {
		return fmt.Errorf("problemfile: compile schema: %w", err)
	}
	instance, err := jsonValue(raw)
	if err != nil {
		return &ValidationError{Path: path, Issues: []Issue{{Message: err.Error()}}}
	}
	if err := schema.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		return &ValidationError{Path: path, Issues: collectIssues(verr)}
	}
	return nil
}

// jsonValue converts YAML-decoded values into the shapes the validator
// understands.
func jsonValue(raw map[string]any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
