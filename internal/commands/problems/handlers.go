package problemscmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-capa/internal/commands"
	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/internal/problemfile"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	convertOperation = "problems.convert_markdown"
	saveOperation    = "problems.save"
	importOperation  = "problems.import_file"
)

var (
	// ErrServiceRequired is returned when a handler needs the problem store and none is configured.
	ErrServiceRequired = errors.New("problems command: service required")
	// ErrLoaderRequired is returned when an import runs without a problem file loader.
	ErrLoaderRequired = errors.New("problems command: loader required")
	// ErrDuplicateURLName is returned when two imported files resolve to the same url_name.
	ErrDuplicateURLName = errors.New("problems command: duplicate url_name in import")
)

var (
	_ command.Commander[ConvertMarkdownCommand] = (*ConvertMarkdownHandler)(nil)
	_ command.Commander[SaveProblemCommand]     = (*SaveProblemHandler)(nil)
	_ command.Commander[ImportFileCommand]      = (*ImportFileHandler)(nil)
)

// ConvertMarkdownHandler runs the converter through the shared command handler foundation.
type ConvertMarkdownHandler struct {
	inner *commands.Handler[ConvertMarkdownCommand]
}

// NewConvertMarkdownHandler creates a handler bound to converter.
func NewConvertMarkdownHandler(converter interfaces.MarkupConverter, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertMarkdownCommand]) *ConvertMarkdownHandler {
	baseLogger := ensureLogger(logger)
	exec := func(ctx context.Context, msg ConvertMarkdownCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report := converter.ConvertWithReport(msg.Markdown)
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertMarkdownCommand]{
		commands.WithLogger[ConvertMarkdownCommand](baseLogger),
		commands.WithOperation[ConvertMarkdownCommand](convertOperation),
		commands.WithMessageFields(func(msg ConvertMarkdownCommand) map[string]any {
			return map[string]any{"markdown_bytes": len(msg.Markdown)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertMarkdownCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &ConvertMarkdownHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertMarkdownCommand].
func (h *ConvertMarkdownHandler) Execute(ctx context.Context, msg ConvertMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SaveProblemHandler stores problems through the problem service.
type SaveProblemHandler struct {
	inner *commands.Handler[SaveProblemCommand]
}

// NewSaveProblemHandler creates a handler bound to service.
func NewSaveProblemHandler(service problems.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveProblemCommand]) *SaveProblemHandler {
	baseLogger := ensureLogger(logger)
	exec := func(ctx context.Context, msg SaveProblemCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		var (
			record *problems.Problem
			err    error
		)
		if msg.Markdown != nil {
			record, err = service.SaveMarkdown(ctx, problems.SaveMarkdownInput{
				URLName:     msg.URLName,
				DisplayName: msg.DisplayName,
				Markdown:    *msg.Markdown,
				Metadata:    msg.Metadata,
			})
		} else {
			record, err = service.SaveXML(ctx, problems.SaveXMLInput{
				URLName:     msg.URLName,
				DisplayName: msg.DisplayName,
				XML:         msg.XML,
				Metadata:    msg.Metadata,
			})
		}
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(record)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveProblemCommand]{
		commands.WithLogger[SaveProblemCommand](baseLogger),
		commands.WithOperation[SaveProblemCommand](saveOperation),
		commands.WithMessageFields(func(msg SaveProblemCommand) map[string]any {
			fields := map[string]any{"advanced": msg.Markdown == nil}
			if name := strings.TrimSpace(msg.URLName); name != "" {
				fields["url_name"] = name
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveProblemCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &SaveProblemHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SaveProblemCommand].
func (h *SaveProblemHandler) Execute(ctx context.Context, msg SaveProblemCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportFileHandler loads problem files, converts them and stores them.
type ImportFileHandler struct {
	inner *commands.Handler[ImportFileCommand]
}

// NewImportFileHandler creates a handler reading files through loader. The
// service may be nil when only dry runs are expected.
func NewImportFileHandler(loader *problemfile.Loader, converter interfaces.MarkupConverter, service problems.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportFileCommand]) *ImportFileHandler {
	baseLogger := ensureLogger(logger)
	exec := func(ctx context.Context, msg ImportFileCommand) error {
		if loader == nil {
			return ErrLoaderRequired
		}
		if service == nil && !msg.DryRun {
			return ErrServiceRequired
		}

		var files []*problemfile.File
		if path := strings.TrimSpace(msg.Path); path != "" {
			file, err := loader.Load(ctx, path)
			if err != nil {
				return err
			}
			files = append(files, file)
		} else {
			loaded, err := loader.LoadDirectory(ctx, msg.Directory, msg.Pattern)
			if err != nil {
				return err
			}
			files = loaded
		}

		urlNames, err := resolveImportNames(files)
		if err != nil {
			return err
		}

		result := ImportResult{
			URLNames: make([]string, 0, len(files)),
			Reports:  make(map[string]interfaces.ConversionReport, len(files)),
			DryRun:   msg.DryRun,
		}
		for i, file := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			urlName := urlNames[i]
			report := converter.ConvertWithReport(file.Body)
			if !msg.DryRun {
				if _, err := service.SaveMarkdown(ctx, problems.SaveMarkdownInput{
					URLName:     urlName,
					DisplayName: file.Meta.DisplayName,
					Markdown:    file.Body,
					Metadata:    file.Meta.Metadata(),
				}); err != nil {
					return err
				}
			}
			if !report.WellFormed {
				result.Degraded = append(result.Degraded, urlName)
				logging.WithProblemContext(baseLogger, urlName, file.Path).Warn("problems.import.degraded", "diagnostics", len(report.Diagnostics))
			}
			result.URLNames = append(result.URLNames, urlName)
			result.Reports[urlName] = report
		}

		logging.WithFields(baseLogger, map[string]any{
			"imported_count": len(result.URLNames),
			"degraded_count": len(result.Degraded),
			"dry_run":        msg.DryRun,
		}).Info("problems.command.import_file.completed")
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportFileCommand]{
		commands.WithLogger[ImportFileCommand](baseLogger),
		commands.WithOperation[ImportFileCommand](importOperation),
		commands.WithMessageFields(func(msg ImportFileCommand) map[string]any {
			fields := map[string]any{}
			if msg.Path != "" {
				fields["path"] = msg.Path
			}
			if msg.Directory != "" {
				fields["directory"] = msg.Directory
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &ImportFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ImportFileCommand].
func (h *ImportFileHandler) Execute(ctx context.Context, msg ImportFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// resolveImportNames returns the stored url_name of every file, in order, and
// rejects imports where two files would overwrite each other.
func resolveImportNames(files []*problemfile.File) ([]string, error) {
	names := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		urlName, err := problems.ResolveURLName(file.URLName(), file.Meta.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		if previous, ok := seen[urlName]; ok {
			return nil, fmt.Errorf("%w: %s and %s both resolve to %q", ErrDuplicateURLName, previous, file.Path, urlName)
		}
		seen[urlName] = file.Path
		names[i] = urlName
	}
	return names, nil
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
