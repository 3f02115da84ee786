package problemscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

const (
	convertMarkdownMessageType = "capa.problems.convert_markdown"
	saveProblemMessageType     = "capa.problems.save"
	importFileMessageType      = "capa.problems.import_file"
)

// ConvertMarkdownCommand converts editor markdown without storing anything.
type ConvertMarkdownCommand struct {
	Markdown string `json:"markdown"`
	// ResultCallback receives the conversion report.
	ResultCallback func(interfaces.ConversionReport) `json:"-"`
}

// Type implements command.Message.
func (ConvertMarkdownCommand) Type() string { return convertMarkdownMessageType }

// Validate ensures there is something to convert.
func (cmd ConvertMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Markdown, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("capa.problems.convert_markdown.markdown_required", "markdown is required")
			}
			return nil
		})),
	)
}

// SaveProblemCommand stores a problem. Exactly one of Markdown or XML is set:
// markdown saves in simple mode, XML in advanced mode.
type SaveProblemCommand struct {
	URLName     string         `json:"url_name,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	Markdown    *string        `json:"markdown,omitempty"`
	XML         string         `json:"data,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	// ResultCallback receives the stored problem.
	ResultCallback func(*problems.Problem) `json:"-"`
}

// Type implements command.Message.
func (SaveProblemCommand) Type() string { return saveProblemMessageType }

// Validate checks identifiers and the markdown/xml exclusivity.
func (cmd SaveProblemCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.URLName, validation.When(strings.TrimSpace(cmd.DisplayName) == "",
			validation.By(requiredText("capa.problems.save.name_required", "url_name or display_name is required")),
		)),
		validation.Field(&cmd.XML, validation.By(func(value any) error {
			hasXML := strings.TrimSpace(value.(string)) != ""
			switch {
			case cmd.Markdown != nil && hasXML:
				return validation.NewError("capa.problems.save.exclusive", "markdown and data are mutually exclusive")
			case cmd.Markdown == nil && !hasXML:
				return validation.NewError("capa.problems.save.content_required", "markdown or data is required")
			}
			return nil
		})),
	)
}

// ImportFileCommand imports problem files. Path names a single file and
// Directory a tree of files matching Pattern; exactly one must be set.
type ImportFileCommand struct {
	Path      string `json:"path,omitempty"`
	Directory string `json:"directory,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	// DryRun converts the files without storing them.
	DryRun bool `json:"dry_run,omitempty"`
	// ResultCallback receives the import summary.
	ResultCallback func(ImportResult) `json:"-"`
}

// ImportResult summarises an import run.
type ImportResult struct {
	URLNames []string                               `json:"url_names"`
	Reports  map[string]interfaces.ConversionReport `json:"reports"`
	DryRun   bool                                   `json:"dry_run,omitempty"`
	Degraded []string                               `json:"degraded,omitempty"`
}

// Type implements command.Message.
func (ImportFileCommand) Type() string { return importFileMessageType }

// Validate ensures a single source is selected.
func (cmd ImportFileCommand) Validate() error {
	hasPath := strings.TrimSpace(cmd.Path) != ""
	hasDir := strings.TrimSpace(cmd.Directory) != ""
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.By(func(any) error {
			switch {
			case hasPath && hasDir:
				return validation.NewError("capa.problems.import_file.exclusive", "path and directory are mutually exclusive")
			case !hasPath && !hasDir:
				return validation.NewError("capa.problems.import_file.source_required", "path or directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.When(hasPath, validation.Empty.Error("pattern only applies to directories"))),
	)
}

func requiredText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
